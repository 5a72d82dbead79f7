package main

import (
	"fmt"
	"strings"
)

// menuItem is a single gate choice in the picker. script is the gate name
// as it appears in a step script.
type menuItem struct {
	name        string
	script      string
	symbol      string
	needsTarget bool
	needsParams bool
	example     string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", script: "h", symbol: "H"},
			{name: "Pauli-X (NOT)", script: "x", symbol: "X"},
			{name: "Pauli-Y", script: "y", symbol: "Y"},
			{name: "Pauli-Z", script: "z", symbol: "Z"},
			{name: "Identity", script: "id", symbol: "I"},
			{name: "Phase (S)", script: "s", symbol: "S"},
			{name: "Phase Dagger (S†)", script: "sdg", symbol: "S†"},
			{name: "T Gate", script: "t", symbol: "T"},
			{name: "T Dagger (T†)", script: "tdg", symbol: "T†"},
			{name: "√X (SX)", script: "sx", symbol: "√X"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", script: "rx", symbol: "RX", needsParams: true, example: "pi/2"},
			{name: "Rotate Y", script: "ry", symbol: "RY", needsParams: true, example: "pi/2"},
			{name: "Rotate Z", script: "rz", symbol: "RZ", needsParams: true, example: "pi/2"},
			{name: "Phase Shift", script: "p", symbol: "P", needsParams: true, example: "pi/4"},
		},
	},
	{
		name: "Two Qubit",
		items: []menuItem{
			{name: "CNOT", script: "cx", symbol: "●─⊕", needsTarget: true},
			{name: "Controlled-Y", script: "cy", symbol: "●─Y", needsTarget: true},
			{name: "Controlled-Z", script: "cz", symbol: "●─●", needsTarget: true},
			{name: "Controlled-H", script: "ch", symbol: "●─H", needsTarget: true},
			{name: "SWAP", script: "swap", symbol: "×─×", needsTarget: true},
			{name: "C-Rotate X", script: "crx", symbol: "●─RX", needsTarget: true, needsParams: true, example: "pi/2"},
			{name: "C-Rotate Y", script: "cry", symbol: "●─RY", needsTarget: true, needsParams: true, example: "pi/2"},
			{name: "C-Rotate Z", script: "crz", symbol: "●─RZ", needsTarget: true, needsParams: true, example: "pi/2"},
			{name: "C-Phase", script: "cp", symbol: "●─P", needsTarget: true, needsParams: true, example: "pi/4"},
		},
	},
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Apply Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 40)))
	sb.WriteString("\n")

	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-*s", menuNameW, item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-*s", menuNameW, item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.needsTarget {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsParams {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.example)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
