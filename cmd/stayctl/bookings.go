package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	stayfinder "github.com/stayfinder/stayfinder-go"
)

func newBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Manage the current user's bookings",
	}
	cmd.AddCommand(newBookingsListCmd())
	cmd.AddCommand(newBookingsAddCmd())
	cmd.AddCommand(newBookingsCancelCmd())
	return cmd
}

func newBookingsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the current user's bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := restoredClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			bookings, err := c.Bookings().FetchAll(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(bookings)
		},
	}
}

func newBookingsAddCmd() *cobra.Command {
	var placeID, firstName, lastName, from, to string
	var guests int
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a place for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			dateFrom, err := parseDate("from", from)
			if err != nil {
				return err
			}
			dateTo, err := parseDate("to", to)
			if err != nil {
				return err
			}
			c, err := restoredClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			// Pull the place so the booking carries its title and image.
			place, err := c.Listings().FetchOne(cmd.Context(), placeID)
			if err != nil {
				return err
			}
			booking, err := c.Bookings().Create(cmd.Context(), stayfinder.CreateBookingRequest{
				PlaceID:    place.ID,
				PlaceTitle: place.Title,
				PlaceImage: place.ImageURL,
				FirstName:  firstName,
				LastName:   lastName,
				GuestCount: guests,
				DateFrom:   dateFrom,
				DateTo:     dateTo,
			})
			if err != nil {
				return err
			}
			log.Info().Str("booking_id", booking.ID).Msg("booking created")
			return printJSON(booking)
		},
	}
	cmd.Flags().StringVar(&placeID, "place-id", "", "Place to book")
	cmd.Flags().StringVar(&firstName, "first-name", "", "Guest first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Guest last name")
	cmd.Flags().IntVar(&guests, "guests", 1, "Number of guests")
	cmd.Flags().StringVar(&from, "from", "", "Check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Check-out date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("place-id")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newBookingsCancelCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a booking",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := restoredClient()
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()
			if err := c.Bookings().Cancel(cmd.Context(), id); err != nil {
				return err
			}
			log.Info().Str("booking_id", id).Msg("booking cancelled")
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Booking id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
