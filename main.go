package main

import "github.com/pv-udpv/opendirect21-adcom/cmd"

func main() {
	cmd.Execute()
}
