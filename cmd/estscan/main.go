// cmd/estscan/main.go
package main

import (
	"estscan/internal/app"
	"estscan/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
