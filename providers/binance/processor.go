package binance

import (
	"sync"

	"github.com/valyala/fastjson"
)

// parserPool reuses fastjson parsers across messages.
var parserPool = sync.Pool{
	New: func() any {
		return &fastjson.Parser{}
	},
}

// Processor decodes raw stream payloads and dispatches the typed messages to
// a Handler. Payloads may arrive in the direct event format or wrapped in
// the combined-stream envelope {"stream":...,"data":{...}}.
type Processor struct {
	handler Handler
}

// NewProcessor creates a new Processor instance.
func NewProcessor(handler Handler) *Processor {
	return &Processor{handler: handler}
}

// Process decodes one payload and invokes the matching handler callback.
func (p *Processor) Process(data []byte) error {
	parser := parserPool.Get().(*fastjson.Parser)
	defer parserPool.Put(parser)

	v, err := parser.ParseBytes(data)
	if err != nil {
		return err
	}
	if v.Exists("stream") && v.Exists("data") {
		v = v.Get("data")
	}

	switch string(v.GetStringBytes("e")) {
	case "depthUpdate":
		return p.handler.OnDepthUpdateMessage(unmarshalDepthUpdateMessage(v))
	case "trade":
		return p.handler.OnTradeMessage(unmarshalTradeMessage(v))
	default:
		return p.handler.OnUnknownMessage(UnknownMessage{
			EventType: string(v.GetStringBytes("e")),
			Data:      data,
		})
	}
}
