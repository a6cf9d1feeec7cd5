package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	stayfinder "github.com/stayfinder/stayfinder-go"
)

const dateLayout = "2006-01-02"

func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be %s: %w", flag, dateLayout, err)
	}
	return t, nil
}

func newPlacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places",
		Short: "Browse and manage offered places",
	}
	cmd.AddCommand(newPlacesListCmd())
	cmd.AddCommand(newPlacesGetCmd())
	cmd.AddCommand(newPlacesAddCmd())
	cmd.AddCommand(newPlacesUpdateCmd())
	return cmd
}

func newPlacesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all offered places",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := restoredClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			listings, err := c.Listings().FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(listings)
		},
	}
}

func newPlacesGetCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a single offered place",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := restoredClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			listing, err := c.Listings().FetchOne(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(listing)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Place id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newPlacesAddCmd() *cobra.Command {
	var title, description, imageURL, from, to string
	var price float64
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Offer a new place",
		RunE: func(cmd *cobra.Command, args []string) error {
			availableFrom, err := parseDate("from", from)
			if err != nil {
				return err
			}
			availableTo, err := parseDate("to", to)
			if err != nil {
				return err
			}
			c, err := restoredClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			listing, err := c.Listings().Create(cmd.Context(), stayfinder.CreateListingRequest{
				Title:         title,
				Description:   description,
				ImageURL:      imageURL,
				Price:         price,
				AvailableFrom: availableFrom,
				AvailableTo:   availableTo,
			})
			if err != nil {
				return err
			}
			log.Info().Str("place_id", listing.ID).Msg("place created")
			return printJSON(listing)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Place title")
	cmd.Flags().StringVar(&description, "description", "", "Place description")
	cmd.Flags().StringVar(&imageURL, "image-url", "", "Place image URL (see upload-image)")
	cmd.Flags().Float64Var(&price, "price", 0, "Price per night")
	cmd.Flags().StringVar(&from, "from", "", "First available date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last available date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("image-url")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newPlacesUpdateCmd() *cobra.Command {
	var id, title, description string
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update a place's title and description",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := restoredClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			listing, err := c.Listings().Update(cmd.Context(), id, title, description)
			if err != nil {
				return err
			}
			return printJSON(listing)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Place id")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newUploadImageCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "upload-image",
		Short: "Upload an image and print its assigned URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			c, err := restoredClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			upload, err := c.Listings().UploadImage(cmd.Context(), filepath.Base(path), f)
			if err != nil {
				return err
			}
			return printJSON(upload)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "Path to the image file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
