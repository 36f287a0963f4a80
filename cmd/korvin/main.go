package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/korvin-os/korvin/internal/driver"
	"github.com/korvin-os/korvin/internal/identity"
	"github.com/korvin-os/korvin/internal/kernel"
	"github.com/korvin-os/korvin/internal/logging"
	"github.com/korvin-os/korvin/internal/serv/etcchrono"
	"github.com/korvin-os/korvin/internal/serv/gfx2d"
	"github.com/korvin-os/korvin/internal/serv/ioterm"
	"github.com/korvin-os/korvin/internal/serv/systask"
	"github.com/korvin-os/korvin/internal/task"
)

func main() {
	configPath := flag.String("config", "", "path to korvin.toml")
	entryFlag := flag.String("entry", "", "entry message, overrides config")
	flag.Parse()

	if err := run(*configPath, *entryFlag); err != nil {
		fmt.Fprintf(os.Stderr, "korvin: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, entryFlag string) error {
	logging.ConfigureRuntime()
	log := logging.New("korvin")

	cfg := defaultRuntimeConfig()
	if configPath != "" {
		loaded, err := loadRuntimeConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if entryFlag != "" {
		cfg.Entry = entryFlag
	}

	k := kernel.New(kernel.Config{
		Encoder: identity.SHA3{},
		Drivers: kernel.Drivers{
			CLI:  driver.NewConsoleCLI(),
			Disp: driver.NewNullDisp(),
			Time: driver.NewClock(),
			Rnd:  driver.HostRnd{},
			Mem:  driver.HostMem{},
		},
		Logger: log,
	})

	reg := task.NewRegistry(k, log)
	k.SetTasks(reg)

	services := []struct {
		name string
		serv kernel.Service
	}{
		{systask.ServPath, systask.New()},
		{ioterm.ServPath, ioterm.New()},
		{etcchrono.ServPath, etcchrono.New()},
		{gfx2d.ServPath, gfx2d.New()},
	}
	for _, s := range services {
		if err := k.RegisterService(s.name, s.serv); err != nil {
			return err
		}
	}

	k.RegisterUser(kernel.User{Name: cfg.User})

	id, err := k.Start(cfg.User, cfg.Entry)
	if err != nil {
		return err
	}

	res, err := reg.Wait(context.Background(), id)
	if err != nil {
		return err
	}
	if res != nil {
		log.Info().Str("ath", res.Ath).Str("hsh", res.Hash).Msg("entry task finished")
	}
	return nil
}
