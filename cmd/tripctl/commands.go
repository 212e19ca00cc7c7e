package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"trip-route-service/internal/adapters/planner"
	"trip-route-service/internal/api/dto"
	"trip-route-service/internal/domain"
	"trip-route-service/internal/services"

	"github.com/urfave/cli/v2"
)

func estimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Print the great-circle distance in miles between two points",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "from", Usage: "origin as lat,lng", Required: true},
			&cli.StringFlag{Name: "to", Usage: "destination as lat,lng", Required: true},
		},
		Action: func(c *cli.Context) error {
			from, err := parseLatLng(c.String("from"))
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := parseLatLng(c.String("to"))
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			_, err = fmt.Fprintf(c.App.Writer, "%.2f\n", services.DistanceMiles(from, to))
			return err
		},
	}
}

func placeCommand() *cli.Command {
	return &cli.Command{
		Name:  "place",
		Usage: "Place the events of a saved plan-route response on its route",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "plan-route response JSON, - for stdin", Required: true},
		},
		Action: func(c *cli.Context) error {
			body, err := readInput(c.String("file"))
			if err != nil {
				return err
			}
			return writeMarkers(c.App.Writer, body)
		},
	}
}

// parseLatLng reads "lat,lng" and checks the ranges.
func parseLatLng(s string) (domain.Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coordinate{}, fmt.Errorf("%q is not lat,lng", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("longitude: %w", err)
	}

	c := domain.Coordinate{Lat: lat, Lon: lng}
	if err := c.Validate(); err != nil {
		return domain.Coordinate{}, err
	}
	return c, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return body, nil
}

func writeMarkers(w io.Writer, body []byte) error {
	plan, err := planner.DecodePlan(body)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.NewMarkersResponse(services.PlaceTripEvents(plan)))
}
