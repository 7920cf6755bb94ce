package bus

// Topic is the destination string a message is published under, e.g.
// "data.quotes.BINANCE.ETHUSDT". The bus imposes no structure beyond full
// string identity.
type Topic string

// Pattern is a subscription filter over topics. "*" matches any run of
// characters including none, "?" matches exactly one character, everything
// else matches literally against the whole topic.
type Pattern string

// Endpoint is the address of a point-to-point handler.
type Endpoint string

// CorrelationID ties a request to its response handler.
type CorrelationID string

// internPool deduplicates hot strings so repeated topics and patterns share
// one backing allocation and cache keys compare against the same data.
type internPool struct {
	strings map[string]string
}

func newInternPool() *internPool {
	return &internPool{strings: make(map[string]string)}
}

func (p *internPool) Intern(s string) string {
	if interned, ok := p.strings[s]; ok {
		return interned
	}
	p.strings[s] = s
	return s
}

func (p *internPool) InternTopic(topic Topic) Topic {
	return Topic(p.Intern(string(topic)))
}

func (p *internPool) InternPattern(pattern Pattern) Pattern {
	return Pattern(p.Intern(string(pattern)))
}
