package main

import "github.com/init-pkg/soupis-parser/internal/bootstrap"

func main() {
	bootstrap.Run()
}
