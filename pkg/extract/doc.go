// Package extract turns loosely structured storefront text into numbers the
// aggregator can compare: pack sizes from titles, prices from display text,
// and effective unit prices from tiered promotions.
package extract
