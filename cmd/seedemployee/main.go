// Command seedemployee provisions a reviewer account. Employees cannot
// register through the portal, so operators run this against the database
// directly. The password is read from the terminal, never from argv.
package main

import (
	"context"
	"crypto/subtle"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dspetrov/payportal/internal/server/employees"
	"github.com/dspetrov/payportal/internal/server/shared/db"
)

func main() {

	dsn := flag.String("d", "", "database DSN")
	username := flag.String("u", "", "employee username")
	fullName := flag.String("n", "", "employee full name")
	flag.Parse()

	if *dsn == "" || *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	password, err := getPassword(os.Stdout, "Enter password: ")
	if err != nil {
		log.Fatalf("error reading password: %v", err)
	}

	confirm, err := getPassword(os.Stdout, "Confirm password: ")
	if err != nil {
		log.Fatalf("error reading password: %v", err)
	}

	if subtle.ConstantTimeCompare(password, confirm) != 1 {
		log.Fatal("passwords do not match")
	}

	if len(password) == 0 {
		log.Fatal("password must not be empty")
	}

	ctx := context.Background()

	rm, err := db.NewPostgresRepositoryManager(*dsn)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer rm.Close()

	service := employees.NewService(rm.Employees())

	employee, err := service.Seed(ctx, *username, *fullName, string(password))
	if err != nil {
		log.Fatalf("error seeding employee: %v", err)
	}

	fmt.Printf("employee %s ready (id %s)\n", employee.Username, employee.ID)
}
