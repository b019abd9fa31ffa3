package main

import "resto_dashboard/internal/cli"

func main() {
	cli.Execute()
}
