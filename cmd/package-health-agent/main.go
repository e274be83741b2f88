package main

import "github.com/Ade-Adebayo/package-health-agent/internal/cli"

func main() {
	cli.Execute()
}
