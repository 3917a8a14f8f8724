package main

import "github.com/jandersaraiva/nutrivida/cmd/nutrivida"

func main() {
	nutrivida.Execute()
}
