package main

import "github.com/Karthikeyasharma979/fitness/cmd/arise/root"

func main() {
	root.Execute()
}
