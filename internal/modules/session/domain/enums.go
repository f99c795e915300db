//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// ScrollMode represents the state of the scroll controller
// ENUM(idle,scrolling,dragging)
type ScrollMode string
