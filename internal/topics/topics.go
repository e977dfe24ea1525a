// Package topics supplies debate topics for rooms whose topic is chosen by the server.
package topics

import "math/rand/v2"

var debateTopics = []string{
	"AI",
	"College Education",
	"Space Exploration",
	"Voting",
	"Video Games",
	"Death Penalty",
	"Genetic Engineering",
	"Universal Basic Income",
	"Nuclear Energy",
	"Smartphones in Schools",
	"Online Privacy",
	"Animal Testing",
	"Capitalism",
	"Vaccinations",
	"Remote Work",
	"Legalization of Drugs",
	"Four-Day Work Week",
	"Self-Driving Cars",
	"Censorship",
}

// Provider picks random topics from a fixed list. It is safe for concurrent use.
type Provider struct {
	topics []string
	intN   func(n int) int
}

// Default returns a provider over the built-in debate topics.
func Default() *Provider {
	return New(debateTopics)
}

// New returns a provider over the given list. An empty list falls back to the built-in topics.
func New(list []string) *Provider {
	if len(list) == 0 {
		list = debateTopics
	}
	return &Provider{
		topics: append([]string(nil), list...),
		intN:   rand.IntN,
	}
}

// All returns a copy of the topic list.
func (p *Provider) All() []string {
	return append([]string(nil), p.topics...)
}

// Random returns any topic from the list.
func (p *Provider) Random() string {
	return p.topics[p.intN(len(p.topics))]
}

// Next returns a random topic different from current when the list allows it.
func (p *Provider) Next(current string) string {
	candidates := make([]string, 0, len(p.topics))
	for _, t := range p.topics {
		if t != current {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return p.Random()
	}
	return candidates[p.intN(len(candidates))]
}
