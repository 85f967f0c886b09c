package util

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

var adjectives = []string{
	"Fast", "Slow", "Quick", "Sly", "Shifty", "Sneaky", "Lucky", "Grim", "Nervous", "Happy", "Funny",
	"Red", "Blue", "Green", "Orange", "Purple", "Fuzzy", "Smiling", "Tall", "Grand", "Drunk", "Prime",
	"Growling", "Slithering", "Whistling", "Bluffing", "Staring", "Sweating", "Grinning", "Shaking",
}

var animals = []string{
	"Otter", "Fox", "Panda", "Hawk", "Lynx", "Wolf", "Bear", "Moose", "Seal", "Whale",
	"Dog", "Cat", "Mouse", "Alligator", "Shark", "Hippo", "Giraffe", "Lion", "Tiger",
	"Muskrat", "Dolphin", "Porcupine", "Hedgehog", "Snake", "Lizard", "Raven", "Okapi", "Eagle",
}

var (
	random   = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec
	randomMu sync.Mutex
)

// GetRandomName returns a random name by combining an adjective with an animal
func GetRandomName() string {
	randomMu.Lock()
	defer randomMu.Unlock()

	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}
