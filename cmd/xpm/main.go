package main

import "xpm/internal/cli"

func main() {
	cli.Execute()
}
