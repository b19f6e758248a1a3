// Command climb is the CLI for the forum: it keeps the local pseudo-auth
// session on disk and talks to the API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/summit-seekers/forum-service/internal/client"
	"github.com/summit-seekers/forum-service/internal/client/session"
	"github.com/summit-seekers/forum-service/internal/dto"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8080", "forum API server URL")
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		fatal(err)
	}
	store := session.NewStore(filepath.Join(configDir, "summit-seekers"))
	current, err := store.Initialize()
	if err != nil {
		fatal(err)
	}

	c := client.New(*serverURL, store)
	ctx := context.Background()

	switch cmd := flag.Arg(0); cmd {
	case "whoami":
		fmt.Printf("id: %s\nauthenticated: %v\n", current.ID, current.Authenticated())
	case "set-key":
		if flag.NArg() < 2 {
			fatal(fmt.Errorf("usage: climb set-key <secret-key>"))
		}
		if err := c.SetSecretKey(ctx, flag.Arg(1)); err != nil {
			fatal(err)
		}
		fmt.Println("secret key set")
	case "sign-out":
		if err := c.SignOut(); err != nil {
			fatal(err)
		}
		fmt.Println("signed out; a fresh identity will be generated next run")
	case "feed":
		runFeed(ctx, c, flag.Args()[1:])
	case "show":
		runShow(ctx, c, flag.Args()[1:])
	case "create":
		runCreate(ctx, c, flag.Args()[1:])
	case "edit":
		runEdit(ctx, c, flag.Args()[1:])
	case "delete":
		id := parseID(flag.Arg(1))
		if err := c.DeletePost(ctx, id); err != nil {
			fatal(err)
		}
		fmt.Println("post deleted")
	case "upvote":
		id := parseID(flag.Arg(1))
		upvotes, err := c.Upvote(ctx, id)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("upvotes: %d\n", upvotes)
	case "comment":
		if flag.NArg() < 3 {
			fatal(fmt.Errorf("usage: climb comment <post-id> <text>"))
		}
		id := parseID(flag.Arg(1))
		comment, err := c.CreateComment(ctx, id, strings.Join(flag.Args()[2:], " "))
		if err != nil {
			fatal(err)
		}
		fmt.Printf("comment %d posted\n", comment.ID)
	default:
		usage()
		os.Exit(2)
	}
}

func runFeed(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("feed", flag.ExitOnError)
	sortKey := fs.String("sort", "recency", "sort order: recency or popularity")
	searchTerm := fs.String("q", "", "search term for title/content")
	flags := fs.String("flags", "", "comma-separated flag selection")
	limit := fs.Int("limit", 0, "page size")
	offset := fs.Int("offset", 0, "page offset")
	fs.Parse(args)

	var selection []string
	if *flags != "" {
		selection = strings.Split(*flags, ",")
	}

	posts, err := c.Feed(ctx, *sortKey, *searchTerm, selection, *limit, *offset)
	if err != nil {
		fatal(err)
	}

	for _, post := range posts {
		line := fmt.Sprintf("#%d  %s  (%d upvotes, %s)", post.Post.ID, post.Post.Title, post.Post.Upvotes, post.Post.CreatedAt.Format("2006-01-02 15:04"))
		if len(post.Flags) > 0 {
			line += "  [" + strings.Join(post.Flags, ", ") + "]"
		}
		fmt.Println(line)
	}
}

func runShow(ctx context.Context, c *client.Client, args []string) {
	if len(args) < 1 {
		fatal(fmt.Errorf("usage: climb show <post-id>"))
	}
	id := parseID(args[0])

	post, err := c.Post(ctx, id)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("#%d  %s\n", post.Post.Post.ID, post.Post.Post.Title)
	if post.Post.Post.Location != "" {
		fmt.Printf("location: %s\n", post.Post.Post.Location)
	}
	if post.Post.Post.Grade != "" {
		fmt.Printf("grade: %s\n", post.Post.Post.Grade)
	}
	if len(post.Post.Flags) > 0 {
		fmt.Printf("flags: %s\n", strings.Join(post.Post.Flags, ", "))
	}
	fmt.Printf("upvotes: %d (upvoted by you: %v)\n", post.Post.Post.Upvotes, post.Upvoted)
	if post.Post.Post.Content != "" {
		fmt.Printf("\n%s\n", post.Post.Post.Content)
	}

	comments, err := c.Comments(ctx, id)
	if err != nil {
		fatal(err)
	}
	if len(comments) > 0 {
		fmt.Println("\ncomments:")
		for _, comment := range comments {
			fmt.Printf("  [%s] %s\n", comment.CreatedAt.Format("2006-01-02 15:04"), comment.Content)
		}
	}
}

func runCreate(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "post title (required)")
	content := fs.String("content", "", "post body")
	imageURL := fs.String("image", "", "image URL")
	location := fs.String("location", "", "climbing location")
	grade := fs.String("grade", "", "climbing grade")
	flags := fs.String("flags", "", "comma-separated flags")
	fs.Parse(args)

	input := dto.CreatePostRequest{
		Title: *title,
		Content: *content,
		ImageURL: *imageURL,
		Location: *location,
		Grade: *grade,
	}
	if *flags != "" {
		input.Flags = strings.Split(*flags, ",")
	}

	post, err := c.CreatePost(ctx, input)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("post %d created\n", post.ID)
}

func runEdit(ctx context.Context, c *client.Client, args []string) {
	if len(args) < 1 {
		fatal(fmt.Errorf("usage: climb edit <post-id> [flags]"))
	}
	id := parseID(args[0])

	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	title := fs.String("title", "", "new title")
	content := fs.String("content", "", "new body")
	imageURL := fs.String("image", "", "new image URL")
	location := fs.String("location", "", "new location")
	grade := fs.String("grade", "", "new grade")
	flags := fs.String("flags", "", "new comma-separated flags")
	fs.Parse(args[1:])

	var input dto.EditPostRequest
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			input.Title = title
		case "content":
			input.Content = content
		case "image":
			input.ImageURL = imageURL
		case "location":
			input.Location = location
		case "grade":
			input.Grade = grade
		case "flags":
			selection := strings.Split(*flags, ",")
			input.Flags = &selection
		}
	})

	post, err := c.EditPost(ctx, id, input)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("post %d updated\n", post.Post.ID)
}

func parseID(arg string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		fatal(fmt.Errorf("invalid post id %q", arg))
	}
	return id
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: climb [-server URL] <command>

commands:
  whoami                     print the local identity
  set-key <secret-key>       set the secret key and register it
  sign-out                   clear the local identity
  feed [-sort -q -flags]     browse the feed
  show <post-id>             show a post with its comments
  create -title ...          create a post
  edit <post-id> [flags]     edit an owned post
  delete <post-id>           delete an owned post
  upvote <post-id>           upvote a post (once per identity)
  comment <post-id> <text>   comment on a post`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}
