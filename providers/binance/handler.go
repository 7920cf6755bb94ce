package binance

type Handler interface {
	OnDepthUpdateMessage(msg DepthUpdateMessage) error
	OnTradeMessage(msg TradeMessage) error
	OnUnknownMessage(msg UnknownMessage) error
}
