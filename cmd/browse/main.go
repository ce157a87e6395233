// cmd/browse/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/realestate-backend/internal/browse"
	"github.com/javajoker/realestate-backend/internal/cache"
	"github.com/javajoker/realestate-backend/internal/client"
	"github.com/javajoker/realestate-backend/internal/config"
	"github.com/javajoker/realestate-backend/internal/utils"
)

const usage = `usage: browse <command> [flags]

commands:
  list         list properties (-name, -address, -min-price, -max-price, -page, -page-size)
  show <id>    show one property, from the cache when available
  clear-cache  remove the local property cache
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	log := utils.NewLogger(cfg.LogLevel, false)
	log.SetOutput(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	storage := cache.NewFileStorage(cfg.CacheFile)
	propertyCache := cache.New(storage, log)
	api := client.New(cfg.APIBaseURL,
		client.WithTimeout(time.Duration(cfg.Timeout)*time.Second),
		client.WithLogger(log),
	)

	newController := func(pageSize int) *browse.Controller {
		return browse.NewController(api, propertyCache, pageSize, log)
	}

	switch os.Args[1] {
	case "list":
		err = runList(ctx, os.Args[2:], newController, cfg.PageSize)
		// Listed properties are persisted once the stored cache is merged.
		if waitErr := propertyCache.WaitRehydrated(ctx); err == nil {
			err = waitErr
		}
	case "show":
		err = runShow(ctx, os.Args[2:], newController(cfg.PageSize))
	case "clear-cache":
		err = propertyCache.Clear()
		if err == nil {
			fmt.Printf("Cache cleared (%s).\n", storage.Path())
		}
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// priceFlag is an optional float flag.
type priceFlag struct {
	value *float64
}

func (p *priceFlag) String() string {
	if p.value == nil {
		return ""
	}
	return strconv.FormatFloat(*p.value, 'f', -1, 64)
}

func (p *priceFlag) Set(raw string) error {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New("price must not be negative")
	}
	p.value = &v
	return nil
}

func runList(ctx context.Context, args []string, newController func(pageSize int) *browse.Controller, defaultPageSize int) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	name := fs.String("name", "", "name contains (case-insensitive)")
	address := fs.String("address", "", "address contains (case-insensitive)")
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", defaultPageSize, "properties per page")
	var minPrice, maxPrice priceFlag
	fs.Var(&minPrice, "min-price", "minimum price")
	fs.Var(&maxPrice, "max-price", "maximum price")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *pageSize < 1 {
		return browse.ErrInvalidPageSize
	}
	controller := newController(*pageSize)

	snapshot, err := controller.ApplyFilters(ctx, browse.Filters{
		Name:     *name,
		Address:  *address,
		MinPrice: minPrice.value,
		MaxPrice: maxPrice.value,
	})
	if err != nil {
		return err
	}

	if *page != 1 {
		if snapshot, err = controller.SetPage(ctx, *page); err != nil {
			return err
		}
	}

	return browse.RenderList(os.Stdout, snapshot)
}

func runShow(ctx context.Context, args []string, controller *browse.Controller) error {
	if len(args) != 1 {
		return errors.New("show takes exactly one property id")
	}

	property, err := controller.Detail(ctx, args[0])
	if err != nil {
		return err
	}
	if property == nil {
		return fmt.Errorf("property %s not found", args[0])
	}

	return browse.RenderDetail(os.Stdout, browse.BuildDetailView(*property))
}
