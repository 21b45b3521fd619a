package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Remote is the client for the sync backend (see internal/api). It speaks
// plain JSON over HTTP: anonymous auth, one keyed record per entity, and
// an append-only weight log.
type Remote struct {
	base string
	hc   *http.Client
}

func NewRemote(baseURL string) *Remote {
	return &Remote{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// errEnvelope is the error body the sync server returns on non-2xx.
type errEnvelope struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// classify maps a non-2xx response to the store error taxonomy.
func classify(status int, body []byte) error {
	var env errEnvelope
	_ = json.Unmarshal(body, &env)
	switch env.Code {
	case "SCHEMA_MISSING":
		return ErrSchemaMissing
	case "NOT_FOUND":
		return ErrNotFound
	}
	if status == http.StatusNotFound {
		return ErrNotFound
	}
	msg := env.Error
	if msg == "" {
		msg = string(body)
	}
	return fmt.Errorf("remote: status %d: %s", status, strings.TrimSpace(msg))
}

func (r *Remote) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remote encode: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.base+path, body)
	if err != nil {
		return fmt.Errorf("remote request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := r.hc.Do(req)
	if err != nil {
		return fmt.Errorf("remote %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("remote read: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return classify(resp.StatusCode, raw)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("remote decode: %w", err)
		}
	}
	return nil
}

// AuthenticateAnonymously creates a fresh anonymous player session.
func (r *Remote) AuthenticateAnonymously(ctx context.Context) (Session, error) {
	var out struct {
		PlayerID string `json:"player_id"`
	}
	if err := r.do(ctx, http.MethodPost, "/auth/anonymous", nil, &out); err != nil {
		return Session{}, err
	}
	return Session{PlayerID: out.PlayerID}, nil
}

// ReadRecord fetches the keyed record for a player into v.
func (r *Remote) ReadRecord(ctx context.Context, playerID, key string, v any) error {
	return r.do(ctx, http.MethodGet, "/players/"+playerID+"/records/"+key, nil, v)
}

// WriteRecord stores v as the keyed record for a player.
func (r *Remote) WriteRecord(ctx context.Context, playerID, key string, v any) error {
	return r.do(ctx, http.MethodPut, "/players/"+playerID+"/records/"+key, v, nil)
}

// DeleteRecord removes one keyed record for a player. Deleting a missing
// record is not an error.
func (r *Remote) DeleteRecord(ctx context.Context, playerID, key string) error {
	return r.do(ctx, http.MethodDelete, "/players/"+playerID+"/records/"+key, nil, nil)
}

// ClearRecords deletes every record for a player (factory reset).
func (r *Remote) ClearRecords(ctx context.Context, playerID string) error {
	return r.do(ctx, http.MethodDelete, "/players/"+playerID+"/records", nil, nil)
}

// AppendWeightLog appends one weight measurement to the player's log.
func (r *Remote) AppendWeightLog(ctx context.Context, playerID string, weight float64) error {
	in := struct {
		Weight float64 `json:"weight"`
	}{Weight: weight}
	return r.do(ctx, http.MethodPost, "/players/"+playerID+"/weight-logs", in, nil)
}

// ReadWeightLogs returns the player's weight log ordered oldest first.
func (r *Remote) ReadWeightLogs(ctx context.Context, playerID string) ([]WeightEntry, error) {
	var out []WeightEntry
	if err := r.do(ctx, http.MethodGet, "/players/"+playerID+"/weight-logs", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
