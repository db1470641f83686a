package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/mymentor/mymentor-go/internal/advice"
	"github.com/mymentor/mymentor-go/internal/admin"
	"github.com/mymentor/mymentor-go/internal/api"
	"github.com/mymentor/mymentor-go/internal/config"
	advicemodel "github.com/mymentor/mymentor-go/internal/model/advice"
	"github.com/mymentor/mymentor-go/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	mode := flag.String("mode", "chat", "mode: chat, users or advisors")
	email := flag.String("email", "", "login email (when no stored session exists)")
	password := flag.String("password", "", "login password")
	apiType := flag.String("api", "anthropic", "generative backend: openai or anthropic")
	page := flag.Int("page", 1, "advisors page to fetch")
	size := flag.Int("size", admin.DefaultPageSize, "advisors page size")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	creds, err := session.OpenCredentials(cfg.Client.CredentialsPath)
	if err != nil {
		log.Fatalf("open credentials store: %v", err)
	}
	defer creds.Close()

	client := api.New(cfg.Client.APIURL, creds, api.WithTimeout(cfg.Client.RequestTimeout))
	store := session.NewStore(client, creds)

	if err := store.Bootstrap(ctx); err != nil {
		log.Printf("[session] stored session unusable: %v", err)
	}
	if !store.Authenticated() {
		if *email == "" || *password == "" {
			log.Fatal("not logged in: pass -email and -password")
		}
		if err := store.Login(ctx, *email, *password); err != nil {
			if errors.Is(err, session.ErrBadCredentials) {
				log.Fatal("login failed: invalid email or password")
			}
			log.Fatalf("login failed: %v", err)
		}
	}

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go session.NewRefresher(store, cfg.Client.RefreshInterval).Run(refreshCtx)

	switch *mode {
	case "chat":
		runChat(ctx, client, store, *apiType)
	case "users":
		runUsers(ctx, client)
	case "advisors":
		runAdvisors(ctx, client, *page, *size)
	default:
		flag.Usage()
		log.Fatalf("unknown mode %q", *mode)
	}
}

func runChat(ctx context.Context, client *api.Client, store *session.Store, apiType string) {
	asesorID, ok := store.GeneralAsesorID()
	if !ok {
		log.Fatal("account has no general consultation advisor assigned")
	}
	u, _ := store.User()

	svc := advice.NewService(client, advice.NewStore())
	if err := svc.LoadAll(ctx, u.Asesores); err != nil {
		log.Fatalf("load advisories: %v", err)
	}

	fmt.Printf("Hola %s. Previous advisories:\n", u.Name)
	printThreads(svc.Store().Sorted())
	fmt.Println("commands: /list /open <id> /new /delete <id> /quit — anything else is sent to the advisor")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue
		case line == "/quit":
			return
		case line == "/list":
			printThreads(svc.Store().Sorted())
		case line == "/new":
			svc.Store().ClearSelection()
			fmt.Println("new advisory: type your first question")
		case strings.HasPrefix(line, "/open "):
			openThread(ctx, svc, strings.TrimPrefix(line, "/open "))
		case strings.HasPrefix(line, "/delete "):
			deleteThread(ctx, svc, strings.TrimPrefix(line, "/delete "))
		default:
			sendTurn(ctx, svc, asesorID, line, apiType)
		}
	}
}

func sendTurn(ctx context.Context, svc *advice.Service, asesorID int, ask, apiType string) {
	thread, err := svc.Ask(ctx, asesorID, session.GeneralAsesorName, ask, apiType)
	if err != nil {
		if errors.Is(err, api.ErrSessionExpired) {
			log.Fatal("session expired, please log in again")
		}
		fmt.Printf("error: %v\n", err)
		return
	}

	if len(thread.Details) > 0 {
		last := thread.Details[len(thread.Details)-1]
		fmt.Printf("[%s] %s\n", last.Model, last.Answer)
	}
}

func openThread(ctx context.Context, svc *advice.Service, arg string) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		fmt.Println("usage: /open <id>")
		return
	}
	if !svc.Store().Select(id) {
		fmt.Printf("no advisory with id %d\n", id)
		return
	}

	thread, err := svc.Details(ctx, id)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	for _, d := range thread.Details {
		fmt.Printf("you: %s\n[%s] %s\n", d.Question, d.Model, d.Answer)
	}
}

func deleteThread(ctx context.Context, svc *advice.Service, arg string) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		fmt.Println("usage: /delete <id>")
		return
	}
	if err := svc.Delete(ctx, id); err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Printf("advisory %d deleted\n", id)
}

func printThreads(threads []advicemodel.Thread) {
	if len(threads) == 0 {
		fmt.Println("  (none yet)")
		return
	}
	for _, t := range threads {
		fmt.Printf("  #%d  %s  (%s)\n", t.ID, t.Description, t.AsesorName)
	}
}

func runUsers(ctx context.Context, client *api.Client) {
	users := admin.NewUsers(client)
	list, err := users.FetchAll(ctx)
	if err != nil {
		log.Fatalf("fetch users: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UUID\tNAME\tEMAIL\tADMIN\tENABLED")
	for _, u := range list {
		fmt.Fprintf(w, "%s\t%s %s\t%s\t%t\t%t\n", u.UUID, u.Name, u.LastName, u.Email, u.Admin, u.Enabled)
	}
	w.Flush()
}

func runAdvisors(ctx context.Context, client *api.Client, page, size int) {
	advisors := admin.NewAdvisors(client)

	p, err := advisors.FetchPage(ctx, page, size)
	if err != nil {
		log.Fatalf("fetch advisors: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tAREA\tDESCRIPTION")
	for _, pro := range p.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", pro.ID, pro.Name, pro.Area.Name, pro.Description)
	}
	w.Flush()
	fmt.Printf("page %d of %d\n", page, p.TotalPages)
}
