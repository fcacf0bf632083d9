package main

import "github.com/isdelr/blogit-be/internal/client/cli"

func main() {
	cli.Execute()
}
