// Package catalog holds the products and categories sold at the counter.
//
// Product owns its stock count. Orders only read products when items are
// added; stock is written by the completion flow and by catalog edits.
package catalog
