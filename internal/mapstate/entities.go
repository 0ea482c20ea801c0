package mapstate

import (
	"mapedit/internal/floatpose"
	"mapedit/internal/geom"
)

// Block is a solid, grid-aligned placement. Blocks are compared and used
// as set/multiset keys by their full field tuple.
type Block struct {
	Model        ModelRef       `json:"model"`
	Coord        geom.Vec3U8    `json:"coord"`
	Dir          geom.Direction `json:"dir"`
	IsGround     bool           `json:"is_ground"`
	VariantIndex uint8          `json:"variant_index"`
	Color        Color          `json:"color"`
}

// FreeBlock is positioned by continuous pose rather than grid cell; it
// never occupies units.
type FreeBlock struct {
	Model ModelRef       `json:"model"`
	Pos   floatpose.Vec3 `json:"pos"`
	Yaw   floatpose.Float32 `json:"yaw"`
	Pitch floatpose.Float32 `json:"pitch"`
	Roll  floatpose.Float32 `json:"roll"`
	Color Color          `json:"color"`
}

// Item is a pickup/decoration placed by continuous pose with an
// additional pivot and animation offset.
type Item struct {
	Model        ModelRef          `json:"model"`
	Pos          floatpose.Vec3    `json:"pos"`
	Yaw          floatpose.Float32 `json:"yaw"`
	Pitch        floatpose.Float32 `json:"pitch"`
	Roll         floatpose.Float32 `json:"roll"`
	PivotPos     floatpose.Vec3    `json:"pivot_pos"`
	VariantIndex uint8             `json:"variant_index"`
	Color        Color             `json:"color"`
	AnimOffset   floatpose.Float32 `json:"anim_offset"`
}
