/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/quocvan1999/auto-api-pusher/cmd"

func main() {
	cmd.Execute()
}
