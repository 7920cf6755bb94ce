package binance

import (
	"github.com/valyala/fastjson"
)

func unmarshalDepthUpdateMessage(v *fastjson.Value) DepthUpdateMessage {
	return DepthUpdateMessage{
		EventTime:     v.GetUint64("E"),
		Symbol:        string(v.GetStringBytes("s")),
		FirstUpdateID: v.GetUint64("U"),
		FinalUpdateID: v.GetUint64("u"),
		Bids:          unmarshalPriceLevels(v.Get("b")),
		Asks:          unmarshalPriceLevels(v.Get("a")),
	}
}

func unmarshalTradeMessage(v *fastjson.Value) TradeMessage {
	return TradeMessage{
		EventTime:    v.GetUint64("E"),
		Symbol:       string(v.GetStringBytes("s")),
		TradeID:      v.GetUint64("t"),
		Price:        string(v.GetStringBytes("p")),
		Quantity:     string(v.GetStringBytes("q")),
		TradeTime:    v.GetUint64("T"),
		BuyerIsMaker: v.GetBool("m"),
	}
}

// unmarshalPriceLevels reads an array of ["price", "size"] pairs.
func unmarshalPriceLevels(v *fastjson.Value) [][2]string {
	if v == nil {
		return nil
	}
	pairs, err := v.Array()
	if err != nil {
		return nil
	}
	levels := make([][2]string, 0, len(pairs))
	for _, pair := range pairs {
		entries, err := pair.Array()
		if err != nil || len(entries) < 2 {
			continue
		}
		levels = append(levels, [2]string{
			string(entries[0].GetStringBytes()),
			string(entries[1].GetStringBytes()),
		})
	}
	return levels
}
