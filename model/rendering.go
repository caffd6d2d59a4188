package model

import (
	"fmt"
	"os"
	"os/exec"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	clearCmd = "clear"
)

// TerminalRenderer implements basic terminal rendering
type TerminalRenderer struct{}

// Display renders the kernel's board to the terminal
func (r *TerminalRenderer) Display(k *Kernel) {
	for y := 0; y < k.height; y++ {
		for x := 0; x < k.width; x++ {
			if k.Cell(x, y) {
				fmt.Print(gridPosBlock)
			} else {
				fmt.Print(gridPosEmpty)
			}
		}
		fmt.Println()
	}
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		fmt.Println("Error clearing terminal:", err)
	}
}
