//go:generate swag init --generalInfo cmd/start.go --output docs/swagger --outputTypes go

package main

import "uloggd/cmd"

func main() {
	cmd.Execute()
}
