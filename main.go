/*
	Copyright 2024 The openlaps authors
*/

package main

import "github.com/openlaps/vbo-session-go/cmd"

func main() {
	cmd.Execute()
}
