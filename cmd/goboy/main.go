// Command goboy runs a Game Boy ROM headlessly, for a number of frames
// or under the websocket debugger.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/serial/accessories"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/debugger"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/saves"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	var logger = log.New()

	romFile := flag.String("rom", "", "The rom file to load")
	bootROM := flag.String("boot", "", "The boot rom file to load")
	asModel := flag.String("model", "auto", "The model to emulate. Can be auto, dmg or cgb")
	saveFolder := flag.String("saves", "saves", "The folder battery saves are kept in")
	frames := flag.Int("frames", 600, "The number of frames to run")
	debugAddr := flag.String("debug", "", "Serve the debugger on the given address instead of running frames")
	printSerial := flag.Bool("serial", false, "Print the bytes sent over the serial port")
	printerFolder := flag.String("printer", "", "Attach a printer, writing prints to the given folder")
	cheatFile := flag.String("cheats", "", "A file of Game Genie and GameShark codes to apply")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if *romFile == "" {
		logger.Fatal("no rom file given, use -rom")
	}

	rom, err := utils.LoadFile(*romFile)
	if err != nil {
		logger.Fatalf("loading rom: %v", err)
	}

	opts := []gameboy.Opt{gameboy.WithLogger(logger)}
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			logger.Fatalf("loading boot rom: %v", err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}

	switch strings.ToLower(*asModel) {
	case "auto":
		// no-op
	case "dmg", "cgb":
		opts = append(opts, gameboy.AsModel(types.StringToModel(*asModel)))
	default:
		logger.Fatalf("unknown model %s", *asModel)
	}

	if *cheatFile != "" {
		f, err := os.Open(*cheatFile)
		if err != nil {
			logger.Fatalf("opening cheats: %v", err)
		}
		engine := cheats.NewEngine(logger)
		err = engine.Load(f)
		f.Close()
		if err != nil {
			logger.Fatalf("loading cheats: %v", err)
		}
		opts = append(opts, gameboy.WithCheats(engine))
	}

	var serialOutput string
	if *printerFolder != "" {
		printer := accessories.NewPrinter(logger)
		printer.OnPrint = func(img *image.Gray) {
			path := filepath.Join(*printerFolder, fmt.Sprintf("print-%03d.png", printer.PrintCount()))
			if err := utils.SaveImage(path, img); err != nil {
				logger.Errorf("saving print: %v", err)
				return
			}
			logger.Infof("printed %dx%d image to %s", img.Rect.Dx(), img.Rect.Dy(), path)
		}
		opts = append(opts, gameboy.WithSerialDevice(printer))
	} else if *printSerial {
		opts = append(opts, gameboy.SerialDebugger(&serialOutput))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		logger.Fatalf("creating gameboy: %v", err)
	}

	title := gb.Header().Title
	store, err := saves.NewStore(*saveFolder, logger)
	if err != nil {
		logger.Fatal(err)
	}
	if gb.Header().CartridgeType.Battery() {
		ram, err := store.Load(title, rom)
		if err != nil {
			logger.Errorf("loading save: %v", err)
		} else if ram != nil {
			if err := gb.LoadRAM(ram); err != nil {
				logger.Warnf("loading save: %v", err)
			}
		}
	}

	if *debugAddr != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = debugger.New(gb, logger).ListenAndServe(ctx, *debugAddr)
		stop()
		if err != nil {
			logger.Errorf("debugger: %v", err)
		}
	} else {
		cycles := 0
		for i := 0; i < *frames; i++ {
			cycles += gb.Frame()
			if gb.CPU.DebugBreakpoint {
				logger.Debugf("breakpoint hit at frame %d", i)
				break
			}
		}
		logger.Debugf("ran %d frames (%d machine cycles)", *frames, cycles)
	}

	if *printSerial && serialOutput != "" {
		fmt.Println(serialOutput)
	}

	if ram := gb.SaveRAM(); ram != nil {
		if err := store.Save(title, rom, ram); err != nil {
			logger.Errorf("writing save: %v", err)
		}
	}
}
