package utils

import (
	"fmt"
	"math/rand"
)

// Word lists for codeword generation. Short, concrete words that are easy
// to say out loud to a stranger at a booth.
var codewordAdjectives = []string{
	"Bold", "Bright", "Calm", "Clever", "Curious", "Daring", "Eager",
	"Gentle", "Golden", "Happy", "Keen", "Lively", "Lucky", "Mellow",
	"Nimble", "Quick", "Quiet", "Silver", "Swift", "Warm", "Wise", "Witty",
}

var codewordNouns = []string{
	"Falcon", "Badger", "Comet", "Dolphin", "Ember", "Fox", "Harbor",
	"Heron", "Lantern", "Maple", "Meadow", "Otter", "Pebble", "Pine",
	"Raven", "River", "Sparrow", "Summit", "Tiger", "Willow",
}

// GenerateCodeword returns a human-readable shared secret of the form
// "<Adjective> <Noun> <NN>" with NN in 10-99, each part drawn uniformly.
func GenerateCodeword() string {
	adjective := codewordAdjectives[rand.Intn(len(codewordAdjectives))]
	noun := codewordNouns[rand.Intn(len(codewordNouns))]
	number := 10 + rand.Intn(90)
	return fmt.Sprintf("%s %s %d", adjective, noun, number)
}
