package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"parcelgate/internal/geometry"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <query>",
	Short: "Resolve a parcel id or free-text query",
	Long: `Resolve a full parcel identifier (e.g. 141201_1.0001.6509) or a
free-text "<district> <number>" query. A single located match includes
its land-use and zoning report.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel, a, err := build(cmd, false)
		if err != nil {
			return err
		}
		defer cancel()
		defer a.Close()

		res, err := a.Service.Resolve(ctx, strings.Join(args, " "))
		if res != nil {
			if perr := printJSON(cmd.OutOrStdout(), res); perr != nil {
				return perr
			}
		}
		return err
	},
}

var atCmd = &cobra.Command{
	Use:   "at <lat> <lng>",
	Short: "Find the parcel containing a WGS84 point",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pt, err := parsePoint(args[0], args[1])
		if err != nil {
			return err
		}
		ctx, cancel, a, err := build(cmd, false)
		if err != nil {
			return err
		}
		defer cancel()
		defer a.Close()

		res, err := a.Service.ParcelAt(ctx, pt.Lat, pt.Lng)
		if res != nil {
			if perr := printJSON(cmd.OutOrStdout(), res); perr != nil {
				return perr
			}
		}
		return err
	},
}

var siteCommune string

var siteCmd = &cobra.Command{
	Use:   "site <lat> <lng>",
	Short: "Report land use and zoning at a WGS84 point",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pt, err := parsePoint(args[0], args[1])
		if err != nil {
			return err
		}
		ctx, cancel, a, err := build(cmd, false)
		if err != nil {
			return err
		}
		defer cancel()
		defer a.Close()

		site, err := a.Service.Site(ctx, &pt, siteCommune)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), site)
	},
}

func init() {
	siteCmd.Flags().StringVar(&siteCommune, "commune", "", "Commune name used for the portal link")
}

func parsePoint(lat, lng string) (geometry.Point, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid latitude %q", lat)
	}
	ln, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid longitude %q", lng)
	}
	return geometry.Point{Lat: la, Lng: ln}, nil
}
