// Package worldmap holds the sparse belief map and its tile vocabulary.
package worldmap

import "github.com/pflow-xyz/gridrunner/geometry"

// Tile is a single cell's identity.
type Tile int

const (
	Unknown Tile = iota
	Empty
	Wall
	Player
	Exit
	DoorRed
	DoorGreen
	DoorBlue
	KeyRed
	KeyGreen
	KeyBlue
	Boulder
	PressurePlateRed
	PressurePlateGreen
	PressurePlateBlue
	Enemy
	Sword
	Health
	Boss
	Treasure
)

func (t Tile) String() string {
	switch t {
	case Unknown:
		return "Unknown"
	case Empty:
		return "Empty"
	case Wall:
		return "Wall"
	case Player:
		return "Player"
	case Exit:
		return "Exit"
	case DoorRed:
		return "DoorRed"
	case DoorGreen:
		return "DoorGreen"
	case DoorBlue:
		return "DoorBlue"
	case KeyRed:
		return "KeyRed"
	case KeyGreen:
		return "KeyGreen"
	case KeyBlue:
		return "KeyBlue"
	case Boulder:
		return "Boulder"
	case PressurePlateRed:
		return "PressurePlateRed"
	case PressurePlateGreen:
		return "PressurePlateGreen"
	case PressurePlateBlue:
		return "PressurePlateBlue"
	case Enemy:
		return "Enemy"
	case Sword:
		return "Sword"
	case Health:
		return "Health"
	case Boss:
		return "Boss"
	case Treasure:
		return "Treasure"
	default:
		return "Invalid"
	}
}

// DoorColor maps a door tile to its color, ok=false otherwise.
func DoorColor(t Tile) (geometry.Color, bool) {
	switch t {
	case DoorRed:
		return geometry.Red, true
	case DoorGreen:
		return geometry.Green, true
	case DoorBlue:
		return geometry.Blue, true
	default:
		return 0, false
	}
}

// DoorForColor returns the door tile for a color.
func DoorForColor(c geometry.Color) Tile {
	switch c {
	case geometry.Red:
		return DoorRed
	case geometry.Green:
		return DoorGreen
	default:
		return DoorBlue
	}
}

// KeyForColor returns the key tile for a color.
func KeyForColor(c geometry.Color) Tile {
	switch c {
	case geometry.Red:
		return KeyRed
	case geometry.Green:
		return KeyGreen
	default:
		return KeyBlue
	}
}

// PlateForColor returns the pressure-plate tile for a color.
func PlateForColor(c geometry.Color) Tile {
	switch c {
	case geometry.Red:
		return PressurePlateRed
	case geometry.Green:
		return PressurePlateGreen
	default:
		return PressurePlateBlue
	}
}

// PlateColor maps a plate tile to its color, ok=false otherwise.
func PlateColor(t Tile) (geometry.Color, bool) {
	switch t {
	case PressurePlateRed:
		return geometry.Red, true
	case PressurePlateGreen:
		return geometry.Green, true
	case PressurePlateBlue:
		return geometry.Blue, true
	default:
		return 0, false
	}
}

// Inventory is the single item a player may hold.
type Inventory int

const (
	InventoryNone Inventory = iota
	InventoryKeyRed
	InventoryKeyGreen
	InventoryKeyBlue
	InventoryBoulder
)

// KeyInventoryForColor returns the inventory slot for holding a key of c.
func KeyInventoryForColor(c geometry.Color) Inventory {
	switch c {
	case geometry.Red:
		return InventoryKeyRed
	case geometry.Green:
		return InventoryKeyGreen
	default:
		return InventoryKeyBlue
	}
}

// InventoryKeyColor reports whether inv holds a key, and which color.
func InventoryKeyColor(inv Inventory) (geometry.Color, bool) {
	switch inv {
	case InventoryKeyRed:
		return geometry.Red, true
	case InventoryKeyGreen:
		return geometry.Green, true
	case InventoryKeyBlue:
		return geometry.Blue, true
	default:
		return 0, false
	}
}
