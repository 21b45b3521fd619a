package game

// Skill is one entry of the static skill tree.
type Skill struct {
	Level int
	ID    string
	Name  string
	Type  string
	Desc  string
}

// SkillTree is the static ordered unlock table.
var SkillTree = []Skill{
	{Level: 1, ID: "sprint", Name: "Sprint", Type: "Passive", Desc: "Running Efficiency +10%"},
	{Level: 5, ID: "stealth", Name: "Stealth", Type: "Active", Desc: "Hide presence (Dim UI)"},
	{Level: 10, ID: "bloodlust", Name: "Bloodlust", Type: "Active", Desc: "Intimidation Aura (Red Theme)"},
	{Level: 15, ID: "shadow_extract", Name: "Shadow Extraction", Type: "Special", Desc: "Unlock Shadow Army Tab"},
	{Level: 25, ID: "monarch_domain", Name: "Domain of the Monarch", Type: "Ultimate", Desc: "Boost all stats visuals"},
	{Level: 50, ID: "rulers_authority", Name: "Ruler's Authority", Type: "God-Tier", Desc: "Telekinesis (Auto-scroll)"},
}

// UnlockedSkills returns every skill whose required level is at or below
// the current level, in tree order.
func (s *Service) UnlockedSkills() []Skill {
	s.mu.Lock()
	level := s.state.Stats.Level
	s.mu.Unlock()

	var out []Skill
	for _, sk := range SkillTree {
		if level >= sk.Level {
			out = append(out, sk)
		}
	}
	return out
}
