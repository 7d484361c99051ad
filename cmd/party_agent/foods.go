package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/party-optimizer/internal/types"
)

var foodsCmd = &cobra.Command{
	Use:   "foods",
	Short: "Manage the food and drink catalog",
}

var foodsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List food items grouped by category",
	Args:  cobra.NoArgs,
	RunE:  runFoodsList,
}

var foodsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a food or drink",
	Args:  cobra.NoArgs,
	RunE:  runFoodsAdd,
}

var foodsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a food item by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runFoodsDelete,
}

var foodsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add the default starter menu",
	Long:  "Adds the eight default foods and drinks. Items that already exist are left untouched.",
	Args:  cobra.NoArgs,
	RunE:  runFoodsSeed,
}

var (
	foodName     string
	foodCost     float64
	foodCategory string
	foodTags     string
	foodsFilter  string
)

func init() {
	foodsListCmd.Flags().StringVar(&foodsFilter, "category", "", "Only list one category: main, snack, dessert or drink")

	foodsAddCmd.Flags().StringVar(&foodName, "name", "", "Item name (required)")
	foodsAddCmd.Flags().Float64Var(&foodCost, "cost", 0, "Cost per guest in dollars (required)")
	foodsAddCmd.Flags().StringVar(&foodCategory, "category", "", "main, snack, dessert or drink (required)")
	foodsAddCmd.Flags().StringVar(&foodTags, "tags", "", "Comma-separated tags, e.g. vegan,gluten-free")
	for _, name := range []string{"name", "cost", "category"} {
		if err := foodsAddCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	foodsCmd.AddCommand(foodsListCmd, foodsAddCmd, foodsDeleteCmd, foodsSeedCmd)
	rootCmd.AddCommand(foodsCmd)
}

func runFoodsList(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	foods := store.ListFoods()
	if foodsFilter != "" {
		c, err := types.ParseCategory(foodsFilter)
		if err != nil {
			return err
		}
		foods = store.FoodsByCategory(c)
	}
	printer(cmd).PrintFoods(foods)
	return nil
}

func runFoodsAdd(cmd *cobra.Command, _ []string) error {
	c, err := types.ParseCategory(foodCategory)
	if err != nil {
		return err
	}
	f := types.Food{
		Name:     foodName,
		Cost:     foodCost,
		Category: c,
		Tags:     splitList(foodTags),
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.AddFood(f); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s ($%.2f per guest)\n", c, strings.TrimSpace(f.Name), f.Cost)
	return nil
}

func runFoodsDelete(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	if err := store.DeleteFood(args[0]); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted food %s\n", args[0])
	return nil
}

func runFoodsSeed(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	n, err := store.SeedDefaultFoods()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d food items (%d total)\n", n, store.CountFoods())
	return nil
}
