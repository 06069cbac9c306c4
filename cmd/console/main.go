package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/atulsm/user-service/pkg/client"
	"github.com/atulsm/user-service/pkg/client/session"
)

const dateLayout = "2006-01-02"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	tokenPath := os.Getenv("TOKEN_FILE")
	if tokenPath == "" {
		var err error
		tokenPath, err = session.DefaultPath()
		if err != nil {
			log.Fatalf("Failed to resolve token path: %v", err)
		}
	}

	api := client.New(client.Config{
		BaseURL: os.Getenv("API_URL"),
		Store:   session.NewFileStore(tokenPath),
		Navigate: func(route string) {
			fmt.Fprintln(os.Stderr, "session expired; run 'console login' to sign in again")
		},
	})
	auth := client.NewAuthService(api)
	users := client.NewUserService(api)
	ctx := context.Background()

	switch cmd := os.Args[1]; cmd {
	case "login":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		email := fs.String("email", "", "Account email")
		password := fs.String("password", "", "Account password")
		fs.Parse(os.Args[2:])

		resp, err := auth.Login(ctx, client.LoginInput{Email: *email, Password: *password})
		if err != nil {
			log.Fatalf("Login failed: %v", err)
		}
		fmt.Printf("Logged in as %s %s <%s>\n", resp.User.FirstName, resp.User.LastName, resp.User.Email)

	case "logout":
		auth.Logout(ctx)
		fmt.Println("Logged out")

	case "register":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		firstName := fs.String("first-name", "", "First name")
		lastName := fs.String("last-name", "", "Last name")
		email := fs.String("email", "", "Account email")
		password := fs.String("password", "", "Account password")
		phone := fs.String("phone", "", "Phone number (optional)")
		fs.Parse(os.Args[2:])

		user, err := auth.Register(ctx, client.RegisterInput{
			FirstName:   *firstName,
			LastName:    *lastName,
			Email:       *email,
			Password:    *password,
			PhoneNumber: *phone,
		})
		if err != nil {
			log.Fatalf("Registration failed: %v", err)
		}
		fmt.Printf("Registered %s <%s>\n", user.ID, user.Email)

	case "reset-password":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		email := fs.String("email", "", "Account email")
		password := fs.String("password", "", "New password")
		fs.Parse(os.Args[2:])

		if err := auth.ResetPassword(ctx, client.ResetPasswordInput{Email: *email, NewPassword: *password}); err != nil {
			log.Fatalf("Password reset failed: %v", err)
		}
		fmt.Println("Password reset")

	case "list":
		list, err := users.List(ctx)
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
		for _, u := range list {
			printUser(&u)
			fmt.Println("---")
		}
		fmt.Printf("%d users\n", len(list))

	case "get":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "User ID")
		fs.Parse(os.Args[2:])

		user, err := users.Get(ctx, *id)
		if err != nil {
			if client.IsNotFound(err) {
				log.Fatalf("No user with ID %s", *id)
			}
			log.Fatalf("Failed to get user: %v", err)
		}
		printUser(user)

	case "create":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		firstName := fs.String("first-name", "", "First name")
		lastName := fs.String("last-name", "", "Last name")
		email := fs.String("email", "", "Account email")
		password := fs.String("password", "", "Initial password")
		phone := fs.String("phone", "", "Phone number (optional)")
		fs.Parse(os.Args[2:])

		user, err := users.Create(ctx, client.CreateUserInput{
			FirstName:   *firstName,
			LastName:    *lastName,
			Email:       *email,
			Password:    *password,
			PhoneNumber: *phone,
		})
		if err != nil {
			log.Fatalf("Failed to create user: %v", err)
		}
		printUser(user)

	case "update":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "User ID")
		input := updateFlags(fs)
		fs.Parse(os.Args[2:])

		user, err := users.Update(ctx, *id, input(fs))
		if err != nil {
			log.Fatalf("Failed to update user: %v", err)
		}
		printUser(user)

	case "delete":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "User ID")
		fs.Parse(os.Args[2:])

		if err := users.Delete(ctx, *id); err != nil {
			log.Fatalf("Failed to delete user: %v", err)
		}
		fmt.Println("Deleted")

	case "profile":
		user, err := users.Profile(ctx)
		if err != nil {
			log.Fatalf("Failed to get profile: %v", err)
		}
		printUser(user)

	case "update-profile":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := updateFlags(fs)
		fs.Parse(os.Args[2:])

		user, err := users.UpdateProfile(ctx, input(fs))
		if err != nil {
			log.Fatalf("Failed to update profile: %v", err)
		}
		printUser(user)

	case "stats":
		stats, err := users.Stats(ctx)
		if err != nil {
			log.Fatalf("Failed to get stats: %v", err)
		}
		fmt.Printf("Total users:  %d\n", stats.TotalUsers)
		fmt.Printf("Active users: %d\n", stats.ActiveUsers)
		fmt.Printf("New users:    %d\n", stats.NewUsers)

	case "activity":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		now := time.Now()
		start := fs.String("start", now.AddDate(0, 0, -7).Format(dateLayout), "Start date (YYYY-MM-DD)")
		end := fs.String("end", now.Format(dateLayout), "End date (YYYY-MM-DD)")
		fs.Parse(os.Args[2:])

		points, err := users.Activity(ctx, client.ActivityParams{StartDate: *start, EndDate: *end})
		if err != nil {
			log.Fatalf("Failed to get activity: %v", err)
		}
		for _, p := range points {
			fmt.Printf("%s  new: %-4d active: %d\n", p.Date, p.NewUsers, p.ActiveUsers)
		}

	default:
		usage()
		os.Exit(1)
	}
}

// updateFlags registers the optional update fields and returns a closure that
// builds the partial-update input from only the flags the caller actually set.
func updateFlags(fs *flag.FlagSet) func(*flag.FlagSet) client.UpdateUserInput {
	fs.String("first-name", "", "First name")
	fs.String("last-name", "", "Last name")
	fs.String("email", "", "Account email")
	fs.String("phone", "", "Phone number")

	return func(fs *flag.FlagSet) client.UpdateUserInput {
		var input client.UpdateUserInput
		fs.Visit(func(f *flag.Flag) {
			value := f.Value.String()
			switch f.Name {
			case "first-name":
				input.FirstName = client.String(value)
			case "last-name":
				input.LastName = client.String(value)
			case "email":
				input.Email = client.String(value)
			case "phone":
				input.PhoneNumber = client.String(value)
			}
		})
		return input
	}
}

func printUser(u *client.User) {
	fmt.Printf("ID:      %s\n", u.ID)
	fmt.Printf("Name:    %s %s\n", u.FirstName, u.LastName)
	fmt.Printf("Email:   %s\n", u.Email)
	if u.PhoneNumber != "" {
		fmt.Printf("Phone:   %s\n", u.PhoneNumber)
	}
	fmt.Printf("Created: %s\n", u.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Updated: %s\n", u.UpdatedAt.Format(time.RFC3339))
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: console <command> [flags]

Commands:
  login             -email -password
  logout
  register          -first-name -last-name -email -password [-phone]
  reset-password    -email -password
  list
  get               -id
  create            -first-name -last-name -email -password [-phone]
  update            -id [-first-name] [-last-name] [-email] [-phone]
  delete            -id
  profile
  update-profile    [-first-name] [-last-name] [-email] [-phone]
  stats
  activity          [-start] [-end]

Environment:
  API_URL      Base URL of the user-service API (default `+client.DefaultBaseURL+`)
  TOKEN_FILE   Session token location (default: user config dir)`)
}
