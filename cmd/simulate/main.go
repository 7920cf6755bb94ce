package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/river-walras/nexuscore/book"
	"github.com/river-walras/nexuscore/market"
)

func main() {
	levels := flag.Int("levels", 20, "price levels per side")
	mid := flag.Float64("mid", 100.0, "midpoint price")
	tick := flag.Float64("tick", 0.01, "price step between levels")
	size := flag.Float64("size", 500, "aggressor order size")
	seed := flag.Int64("seed", 1, "rng seed for level sizes")
	flag.Parse()

	instrumentID := market.InstrumentID{Symbol: "SYNTH", Venue: "SIM"}
	ob := book.NewOrderBook(instrumentID, market.BookTypeL2MBP, nil)
	rng := rand.New(rand.NewSource(*seed))

	// Populate both sides around the midpoint.
	sequence := uint64(0)
	add := func(side market.OrderSide, price float64) {
		sequence++
		p, err := market.NewPrice(price, 2)
		if err != nil {
			log.Fatal(err)
		}
		q, err := market.NewQuantity(float64(10+rng.Intn(90)), 0)
		if err != nil {
			log.Fatal(err)
		}
		order := market.NewBookOrder(side, p, q, market.OrderID(sequence))
		delta := market.NewOrderBookDelta(instrumentID, market.BookActionAdd, order, 0, sequence, market.UnixNanos(sequence))
		if err := ob.ApplyDelta(delta); err != nil {
			log.Fatal(err)
		}
	}
	for i := 1; i <= *levels; i++ {
		add(market.OrderSideBuy, *mid-float64(i)**tick)
		add(market.OrderSideSell, *mid+float64(i)**tick)
	}

	bid, _ := ob.BestBidPrice()
	ask, _ := ob.BestAskPrice()
	spread, _ := ob.Spread()
	fmt.Printf("Book %s: %d bid / %d ask levels, best %s / %s, spread %.4f\n",
		instrumentID, len(ob.Bids(0)), len(ob.Asks(0)), bid, ask, spread)

	// Sweep the ask side with a market buy.
	qty, err := market.NewQuantity(*size, 0)
	if err != nil {
		log.Fatal(err)
	}
	order := market.NewBookOrder(market.OrderSideBuy, market.Price{Raw: market.PriceRawUndef}, qty, 0)
	fills := ob.SimulateFills(order)

	fmt.Printf("\nSimulated fills for buy %s:\n", qty)
	var filled, notional float64
	for _, fill := range fills {
		fmt.Printf("  %s @ %s\n", fill.Size, fill.Price)
		filled += fill.Size.AsF64()
		notional += fill.Size.AsF64() * fill.Price.AsF64()
	}
	if filled > 0 {
		fmt.Printf("Filled %.0f of %s, avg px %.4f\n", filled, qty, notional/filled)
	} else {
		fmt.Println("No liquidity")
	}

	avgPx := ob.GetAvgPxForQuantity(qty, market.OrderSideBuy)
	fmt.Printf("Cross-check avg px: %.4f\n", avgPx)
}
