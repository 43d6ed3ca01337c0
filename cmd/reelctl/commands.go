// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/taibuivan/reelbase/internal/catalog"
	"github.com/taibuivan/reelbase/internal/remote"
	"github.com/taibuivan/reelbase/internal/repository"
	"github.com/taibuivan/reelbase/pkg/convert"
	"github.com/taibuivan/reelbase/pkg/pagination"
	"github.com/taibuivan/reelbase/pkg/pointer"
	"github.com/taibuivan/reelbase/pkg/query"
	"github.com/taibuivan/reelbase/pkg/slice"
)

const dateLayout = "2006-01-02"

func (r *Runner) register() []*cli.Command {
	return []*cli.Command{
		genreResource.command(r, genreAddCommand(r), genreRenameCommand(r)),
		personResource.command(r, personAddCommand(r)),
		movieResource.command(r,
			movieAddCommand(r), movieUpdateCommand(r), movieDetailsCommand(r),
			movieLandingCommand(r), movieRateCommand(r),
		),
	}
}

// # Shared Resource Commands

// resource describes the subcommands every catalog entity supports through
// the shared repository contract.
type resource[T repository.Entity] struct {
	name        string
	usage       string
	repo        func(client *catalog.Client) repository.Repository[T]
	filterFlags func() []cli.Flag
	filter      func(cmd *cli.Command) repository.Filter
}

func (res resource[T]) command(r *Runner, extra ...*cli.Command) *cli.Command {
	idArgument := []cli.Argument{&cli.StringArg{Name: "id"}}

	commands := []*cli.Command{
		{
			Name:  "list",
			Usage: "List one page of " + res.name,
			Flags: pageFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				page, err := res.repo(r.client).GetPaginated(ctx, pageRequest(cmd))
				if err != nil {
					return err
				}
				return renderPage(r, page)
			},
		},
		{
			Name:  "all",
			Usage: "List every " + res.name + " entry",
			Action: func(ctx context.Context, _ *cli.Command) error {
				all, err := res.repo(r.client).GetAll(ctx)
				if err != nil {
					return err
				}
				return r.render(all)
			},
		},
		{
			Name:      "get",
			Usage:     "Show one entry by id",
			Arguments: idArgument,
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id, err := idArg(cmd)
				if err != nil {
					return err
				}
				entity, err := res.repo(r.client).GetByID(ctx, id)
				if err != nil {
					return err
				}
				return r.render(entity)
			},
		},
		{
			Name:  "find",
			Usage: "Filter " + res.name + " (at least one criterion)",
			Flags: append(pageFlags(), res.filterFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				page, err := res.repo(r.client).Filter(ctx, res.filter(cmd), pageRequest(cmd))
				if err != nil {
					return err
				}
				return renderPage(r, page)
			},
		},
		{
			Name:      "remove",
			Usage:     "Delete one entry by id",
			Arguments: idArgument,
			Action: func(ctx context.Context, cmd *cli.Command) error {
				id, err := idArg(cmd)
				if err != nil {
					return err
				}
				removed, err := res.repo(r.client).Delete(ctx, id)
				if err != nil {
					return err
				}
				r.logger.Info("removed", "resource", res.name, "id", id)
				return r.render(removed)
			},
		},
	}

	return &cli.Command{
		Name:     res.name,
		Usage:    res.usage,
		Commands: append(commands, extra...),
	}
}

func pageFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "page", Usage: "Page number", Value: pagination.DefaultPageNumber},
		&cli.IntFlag{Name: "size", Usage: "Records per page", Value: pagination.DefaultRecordsPerPage},
	}
}

func pageRequest(cmd *cli.Command) *pagination.Request {
	return &pagination.Request{
		PageNumber:     int(cmd.Int("page")),
		RecordsPerPage: int(cmd.Int("size")),
	}
}

func idArg(cmd *cli.Command) (int, error) {
	raw := cmd.StringArg("id")
	if id := convert.PositiveInt(raw); id != nil {
		return *id, nil
	}
	return 0, fmt.Errorf("invalid id %q", raw)
}

func nameFilter(cmd *cli.Command) *string {
	if !cmd.IsSet("name") {
		return nil
	}
	return pointer.To(cmd.String("name"))
}

// # Genres

var genreResource = resource[*catalog.Genre]{
	name:  catalog.ResourceGenres,
	usage: "Manage genres",
	repo: func(client *catalog.Client) repository.Repository[*catalog.Genre] {
		return client.Genres()
	},
	filterFlags: func() []cli.Flag {
		return []cli.Flag{&cli.StringFlag{Name: "name", Usage: "Name contains"}}
	},
	filter: func(cmd *cli.Command) repository.Filter {
		return catalog.GenreFilter{Name: nameFilter(cmd)}
	},
}

func genreAddCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Create a genre",
		Flags: []cli.Flag{&cli.StringFlag{Name: "name", Required: true}},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			created, err := r.client.Genres().Add(ctx, &catalog.Genre{Name: cmd.String("name")})
			if err != nil {
				return err
			}
			return r.render(created)
		},
	}
}

func genreRenameCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "rename",
		Usage:     "Rename a genre",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     []cli.Flag{&cli.StringFlag{Name: "name", Required: true}},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := idArg(cmd)
			if err != nil {
				return err
			}
			updated, err := r.client.Genres().Update(ctx, id, &catalog.Genre{Name: cmd.String("name")})
			if err != nil {
				return err
			}
			return r.render(updated)
		},
	}
}

// # People

var personResource = resource[*catalog.Person]{
	name:  catalog.ResourcePeople,
	usage: "Manage people",
	repo: func(client *catalog.Client) repository.Repository[*catalog.Person] {
		return client.People()
	},
	filterFlags: func() []cli.Flag {
		return []cli.Flag{&cli.StringFlag{Name: "name", Usage: "Name contains"}}
	},
	filter: func(cmd *cli.Command) repository.Filter {
		return catalog.PersonFilter{Name: nameFilter(cmd)}
	},
}

func personAddCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Create a person",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "born", Usage: "Date of birth (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "bio", Usage: "Biography"},
			&cli.StringFlag{Name: "picture", Usage: "Picture URL"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			person := &catalog.Person{
				Name:      cmd.String("name"),
				Biography: cmd.String("bio"),
				Picture:   cmd.String("picture"),
			}
			if cmd.IsSet("born") {
				born, err := time.Parse(dateLayout, cmd.String("born"))
				if err != nil {
					return fmt.Errorf("invalid --born: %w", err)
				}
				person.DateOfBirth = &born
			}

			created, err := r.client.People().Add(ctx, person)
			if err != nil {
				return err
			}
			return r.render(created)
		},
	}
}

// # Movies

var movieResource = resource[*catalog.Movie]{
	name:  catalog.ResourceMovies,
	usage: "Manage movies, their genres and cast",
	repo: func(client *catalog.Client) repository.Repository[*catalog.Movie] {
		return client.Movies()
	},
	filterFlags: func() []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{Name: "title", Usage: "Title contains"},
			&cli.IntFlag{Name: "genre", Usage: "Genre id"},
			&cli.BoolFlag{Name: "in-theaters", Usage: "Only movies in theaters"},
			&cli.BoolFlag{Name: "upcoming", Usage: "Only unreleased movies"},
		}
	},
	filter: func(cmd *cli.Command) repository.Filter {
		var filter catalog.MovieFilter
		if cmd.IsSet("title") {
			filter.Title = pointer.To(cmd.String("title"))
		}
		if cmd.IsSet("genre") {
			filter.GenreID = pointer.To(int(cmd.Int("genre")))
		}
		if cmd.IsSet("in-theaters") {
			filter.InTheaters = pointer.To(cmd.Bool("in-theaters"))
		}
		if cmd.IsSet("upcoming") {
			filter.UpcomingReleases = pointer.To(cmd.Bool("upcoming"))
		}
		return filter
	},
}

func movieGraphFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Required: required},
		&cli.StringFlag{Name: "release", Usage: "Release date (YYYY-MM-DD)", Required: required},
		&cli.StringFlag{Name: "summary"},
		&cli.StringFlag{Name: "trailer"},
		&cli.StringFlag{Name: "poster"},
		&cli.BoolFlag{Name: "in-theaters"},
		&cli.StringFlag{Name: "genres", Usage: "Comma separated genre ids, e.g. 2,5"},
		&cli.StringSliceFlag{Name: "actor", Usage: "Cast entry personId:character, repeat in billing order"},
	}
}

// movieCreation reads the graph flags. Malformed ids fail locally; ids
// that do not exist are skipped by the server.
func movieCreation(cmd *cli.Command) (*catalog.MovieCreation, error) {
	genreIDs, err := query.Ints(cmd.String("genres"))
	if err != nil {
		return nil, fmt.Errorf("invalid --genres: %w", err)
	}

	creation := &catalog.MovieCreation{
		Title:      cmd.String("title"),
		Summary:    cmd.String("summary"),
		Trailer:    cmd.String("trailer"),
		Poster:     cmd.String("poster"),
		InTheaters: cmd.Bool("in-theaters"),
		GenreIDs:   genreIDs,
	}

	if raw := cmd.String("release"); raw != "" {
		released, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid --release: %w", err)
		}
		creation.ReleaseDate = released
	}

	actors, err := parseActors(cmd.StringSlice("actor"))
	if err != nil {
		return nil, err
	}
	creation.Actors = actors

	return creation, nil
}

func parseActors(entries []string) ([]catalog.ActorCreation, error) {
	return slice.MapErr(entries, func(entry string) (catalog.ActorCreation, error) {
		rawID, character, _ := strings.Cut(entry, ":")
		id, err := strconv.Atoi(strings.TrimSpace(rawID))
		if err != nil {
			return catalog.ActorCreation{}, fmt.Errorf("invalid --actor %q, want personId:character", entry)
		}
		return catalog.ActorCreation{PersonID: id, Character: strings.TrimSpace(character)}, nil
	})
}

func movieAddCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Create a movie with genres and cast",
		Flags: movieGraphFlags(true),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			creation, err := movieCreation(cmd)
			if err != nil {
				return err
			}
			created, err := r.client.Movies().Create(ctx, creation)
			if err != nil {
				return err
			}
			return r.render(created)
		},
	}
}

func movieUpdateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Replace a movie with its genres and cast",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     movieGraphFlags(true),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := idArg(cmd)
			if err != nil {
				return err
			}
			update, err := movieCreation(cmd)
			if err != nil {
				return err
			}
			updated, err := r.client.Movies().UpdateGraph(ctx, id, update)
			if err != nil {
				return err
			}
			return r.render(updated)
		},
	}
}

func movieDetailsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "details",
		Usage:     "Show a movie with its average rate",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     []cli.Flag{&cli.BoolFlag{Name: "mine", Usage: "Include your own rate"}},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := idArg(cmd)
			if err != nil {
				return err
			}

			policy := remote.Anonymous
			if cmd.Bool("mine") {
				policy = remote.Authenticated
			}

			details, err := r.client.Movies().Details(ctx, id, policy)
			if err != nil {
				return err
			}
			return r.render(details)
		},
	}
}

func movieLandingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "landing",
		Usage: "Show movies in theaters and upcoming releases",
		Flags: []cli.Flag{&cli.IntFlag{Name: "limit", Value: 6}},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			landing, err := r.client.Movies().Landing(ctx, int(cmd.Int("limit")))
			if err != nil {
				return err
			}
			return r.render(landing)
		},
	}
}

func movieRateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "rate",
		Usage:     "Rate a movie from 1 to 5",
		Arguments: []cli.Argument{&cli.StringArg{Name: "id"}},
		Flags:     []cli.Flag{&cli.IntFlag{Name: "rate", Required: true}},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id, err := idArg(cmd)
			if err != nil {
				return err
			}
			rating, err := r.client.Ratings().Rate(ctx, &catalog.RatingCreation{MovieID: id, Rate: int(cmd.Int("rate"))})
			if err != nil {
				return err
			}
			return r.render(rating)
		},
	}
}
