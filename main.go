// ./main.go
package main

import (
	"github.com/driftcursor/driftcursor/cmd"
)

func main() {
	cmd.Execute()
}
