package main

import (
	"github.com/alecthomas/kong"
)

// CLI defines the sliderbutton command structure.
type CLI struct {
	Serve   ServeCmd   `cmd:"" default:"1" help:"Serve slider widgets over websocket"`
	Replay  ReplayCmd  `cmd:"" help:"Replay recorded pointer events against a card offline"`
	Inspect InspectCmd `cmd:"" help:"Print a card's frame from live Home Assistant state"`
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("sliderbutton"),
		kong.Description("Slider button widgets for Home Assistant entities."),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
