// Public domain.

package main

import "github.com/soniakeys/comove/internal/cmprog"

func main() {
	cmprog.Main()
}
