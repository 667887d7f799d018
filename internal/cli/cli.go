// Package cli реализует консольный интерфейс магазина: просмотр
// каталога гостем, учетные записи и интерактивную административную
// консоль. Весь вывод секций идет через диспетчер представлений,
// поэтому после каждой мутации пересчитываются ровно затронутые
// секции.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/iudanet/nexstore/internal/account"
	"github.com/iudanet/nexstore/internal/admin"
	"github.com/iudanet/nexstore/internal/catalog"
	"github.com/iudanet/nexstore/internal/storage"
	"github.com/iudanet/nexstore/internal/views"
)

type Cli struct {
	catalog    *catalog.Catalog
	accounts   *account.Service
	gate       *admin.Gate
	settings   storage.SettingsStorage
	dispatcher *views.Dispatcher

	in  *bufio.Reader
	out io.Writer

	// readSecret читает секрет без эха. Подменяется в тестах.
	readSecret func(prompt string) (string, error)
}

func New(cat *catalog.Catalog, accounts *account.Service, gate *admin.Gate, settings storage.SettingsStorage) *Cli {
	c := &Cli{
		catalog:  cat,
		accounts: accounts,
		gate:     gate,
		settings: settings,
		in:       bufio.NewReader(os.Stdin),
		out:      os.Stdout,

		readSecret: readPassword,
	}
	c.dispatcher = views.NewDispatcher(views.NewProjector(cat), c)
	return c
}

func PrintUsage() {
	fmt.Print(usageText)
}

// readInput читает строку из stdin
func (c *Cli) readInput(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	input, err := c.in.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readPassword читает секрет без отображения на экране
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println() // Переход на новую строку после ввода
	if err != nil {
		return "", err
	}
	return string(passwordBytes), nil
}
