package command

import (
	"errors"
	"fmt"

	"github.com/zjrosen/photoalbum/internal/domain/album"
	"github.com/zjrosen/photoalbum/internal/domain/shape"
	"github.com/zjrosen/photoalbum/internal/flags"
	"github.com/zjrosen/photoalbum/internal/log"
)

// Executor applies parsed commands to an album.
type Executor struct {
	album *album.Album
	flags *flags.Registry
}

// NewExecutor creates an executor for the album. A nil flag registry
// disables every compatibility flag.
func NewExecutor(a *album.Album, fl *flags.Registry) *Executor {
	return &Executor{album: a, flags: fl}
}

// Execute applies one command.
func (e *Executor) Execute(cmd Command) error {
	switch c := cmd.(type) {
	case *ShapeCommand:
		return e.shape(c)
	case *MoveCommand:
		return e.tolerateMissing(c.Keyword(), c.Name, e.album.Shapes().Move(c.Name, c.X, c.Y))
	case *ColorCommand:
		return e.tolerateMissing(c.Keyword(), c.Name, e.album.Shapes().Recolor(c.Name, c.R, c.G, c.B))
	case *ResizeCommand:
		return e.album.Shapes().Resize(c.Name, c.D1, c.D2)
	case *RemoveCommand:
		if !e.album.Shapes().Remove(c.Name) {
			log.Debug(log.CatAlbum, "Remove of unknown shape ignored", "name", c.Name)
		}
		return nil
	case *SnapshotCommand:
		return e.snapshot(c)
	case nil:
		return fmt.Errorf("%w: nil command", ErrParse)
	default:
		return fmt.Errorf("%w: unsupported command %T", ErrParse, cmd)
	}
}

func (e *Executor) shape(c *ShapeCommand) error {
	color, err := shape.NewColor(c.R, c.G, c.B)
	if err != nil {
		return err
	}
	s, err := e.album.Create(c.Name, c.Kind, c.X, c.Y, c.D1, c.D2, color)
	if err != nil {
		return err
	}
	log.Debug(log.CatAlbum, "Shape created", "shape", s)
	return nil
}

func (e *Executor) snapshot(c *SnapshotCommand) error {
	description := c.Description()
	if e.flags.Enabled(flags.FlagLegacySnapshotDescription) {
		description = c.LegacyDescription()
	}
	snap := e.album.Capture(description)
	log.Info(log.CatAlbum, "Snapshot captured", "id", snap.ID(), "shapes", snap.Len(), "description", description)
	return nil
}

// tolerateMissing drops a not-found error when the silent-missing-shape
// flag is on.
func (e *Executor) tolerateMissing(kw Keyword, name string, err error) error {
	if err != nil && errors.Is(err, album.ErrNotFound) && e.flags.Enabled(flags.FlagSilentMissingShape) {
		log.Debug(log.CatAlbum, "Command on unknown shape ignored", "keyword", kw, "name", name)
		return nil
	}
	return err
}
