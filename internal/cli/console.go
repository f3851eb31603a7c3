package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Console wraps the operator's line-oriented input and output. The reader
// and writer are injected so sessions can be scripted in tests.
type Console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (c *Console) Println(args ...interface{}) {
	fmt.Fprintln(c.out, args...)
}

func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// ReadLine prints the prompt on its own line and returns the next input
// line. io.EOF is returned when input runs out.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		c.Println(prompt)
	}
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.scanner.Text(), nil
}

// ReadMoney prompts until a valid non-negative amount is entered.
func (c *Console) ReadMoney(prompt string) (float64, error) {
	for {
		line, err := c.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		amount, parseErr := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if parseErr != nil || amount < 0 {
			c.Println("Invalid entry. Try again.")
			continue
		}
		return amount, nil
	}
}

// ReadDate prompts for day, month and year until they form a valid
// calendar date.
func (c *Console) ReadDate() (time.Time, error) {
	for {
		day, err := c.readInt("Set Deadline (numeric):\n- Day: ")
		if err != nil {
			return time.Time{}, err
		}
		month, err := c.readInt("- Month: ")
		if err != nil {
			return time.Time{}, err
		}
		year, err := c.readInt("- Year: ")
		if err != nil {
			return time.Time{}, err
		}

		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes out-of-range components, so 31 February
		// silently becomes March. Reject anything that moved.
		if date.Year() != year || date.Month() != time.Month(month) || date.Day() != day {
			c.Printf("Invalid date entry. Try again.\n\n")
			continue
		}
		return date, nil
	}
}

func (c *Console) readInt(prompt string) (int, error) {
	for {
		line, err := c.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		value, parseErr := strconv.Atoi(strings.TrimSpace(line))
		if parseErr != nil {
			c.Printf("Invalid date entry. Try again.\n\n")
			continue
		}
		return value, nil
	}
}
