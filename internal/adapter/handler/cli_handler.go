package handler

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
	"github.com/rl1809/inventory-ledger/internal/core/service"
	"github.com/rl1809/inventory-ledger/internal/port"
)

// CLIHandler runs textual commands such as "add apple 10" against the inventory.
type CLIHandler struct {
	inventory *service.InventoryService
	repos     map[string]port.StockRepository
	archive   port.ActivityArchive
}

func NewCLIHandler(inventory *service.InventoryService) *CLIHandler {
	return &CLIHandler{
		inventory: inventory,
		repos:     make(map[string]port.StockRepository),
	}
}

// WithRepository makes repo available to "export <name>" and "import <name>".
func (h *CLIHandler) WithRepository(name string, repo port.StockRepository) *CLIHandler {
	h.repos[name] = repo
	return h
}

// WithArchive enables the "archive" command.
func (h *CLIHandler) WithArchive(archive port.ActivityArchive) *CLIHandler {
	h.archive = archive
	return h
}

// Execute runs a single command line and writes any output to w.
func (h *CLIHandler) Execute(ctx context.Context, line string, w io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "add", "remove":
		item, qty, err := itemAndQuantity(cmd, args)
		if err != nil {
			return err
		}
		if cmd == "add" {
			return h.inventory.Add(item, qty)
		}
		return h.inventory.Remove(item, qty)

	case "qty", "query":
		if len(args) == 0 {
			return usage(cmd, "<item>")
		}
		item := strings.Join(args, " ")
		_, err := fmt.Fprintf(w, "%s stock: %d\n", item, h.inventory.Quantity(item))
		return err

	case "low":
		threshold := service.DefaultLowStockThreshold
		if len(args) > 0 {
			n, err := parseInt("threshold", args[0])
			if err != nil {
				return err
			}
			threshold = n
		}
		items, err := h.inventory.LowStock(threshold)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "Low items: [%s]\n", strings.Join(items, ", "))
		return err

	case "load":
		return h.inventory.Load(optionalPath(args))

	case "save":
		return h.inventory.Save(optionalPath(args))

	case "inventory", "items":
		return h.inventory.PrintInventory(w)

	case "log":
		return h.inventory.PrintLog(w)

	case "export", "import":
		if len(args) != 1 {
			return usage(cmd, "<"+strings.Join(h.repoNames(), "|")+">")
		}
		repo, ok := h.repos[args[0]]
		if !ok {
			return fmt.Errorf("%w: unknown repository %q", domain.ErrInvalidArgument, args[0])
		}
		if cmd == "export" {
			return h.inventory.Export(ctx, repo)
		}
		return h.inventory.Import(ctx, repo)

	case "archive":
		if h.archive == nil {
			return fmt.Errorf("%w: no activity archive configured", domain.ErrInvalidArgument)
		}
		return h.inventory.Archive(ctx, h.archive)

	default:
		return fmt.Errorf("%w: unknown command %q", domain.ErrInvalidArgument, cmd)
	}
}

func (h *CLIHandler) repoNames() []string {
	names := make([]string, 0, len(h.repos))
	for name := range h.repos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// itemAndQuantity reads "<item...> <qty>"; item names may contain spaces.
func itemAndQuantity(cmd string, args []string) (string, int, error) {
	if len(args) < 2 {
		return "", 0, usage(cmd, "<item> <qty>")
	}
	qty, err := parseInt("quantity", args[len(args)-1])
	if err != nil {
		return "", 0, err
	}
	return strings.Join(args[:len(args)-1], " "), qty, nil
}

func parseInt(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrTypeMismatch, name, raw)
	}
	return n, nil
}

func optionalPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.Join(args, " ")
}

func usage(cmd, params string) error {
	return fmt.Errorf("%w: usage: %s %s", domain.ErrInvalidArgument, cmd, params)
}
