/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/skarsten/keywire/cmd/keywire/cmd"
)

func main() {
	cmd.Execute()
}
