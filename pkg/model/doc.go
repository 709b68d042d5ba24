// Package model defines the validated, typed GUI tree produced by the
// validate package and consumed by codegen. Values are already normalized:
// coordinates are integer pairs, colours are 24-bit RGB values, enum values
// carry their LVGL constant prefix (LV_ALIGN_CENTER) and style settings are
// ordered canonically. The tree is built once per generation pass and never
// mutated afterwards.
package model
