package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parleykit/parley/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a resource for broken references",
	Long:  `Loads the resource and reports dangling next ids, missing response targets, and titles that resolve nowhere.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := loadResource(cmd)
		if err != nil {
			return err
		}

		if err := validator.Validate(res); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		fmt.Println("Resource is valid.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
