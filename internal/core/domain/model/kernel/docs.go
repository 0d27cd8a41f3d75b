// Package kernel provides the value objects shared by the point-of-sale domain.
//
// The package includes:
//   - UUID: identifier for products, categories and orders
//   - Location: a table, delivery slot or counter seat ("mesa_3", "domicilio_1", "barra_5")
//   - Money and TaxRate: decimal amounts rounded to cents
//
// All values are immutable; zero values fail Validate and must be built
// through their constructors.
package kernel
