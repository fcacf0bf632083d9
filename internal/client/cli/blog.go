package cli

import (
	"context"
	"fmt"

	"github.com/isdelr/blogit-be/internal/client/api"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all published blogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		posts, err := rootApp.client.AllBlogs(cmd.Context())
		if err != nil {
			return err
		}
		printPosts(posts)
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single blog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		post, err := rootApp.client.Blog(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\nby %s, %s\n\n%s\n", post.Title, post.Author, post.CreatedAt.Format("2006-01-02 15:04"), post.Content)
		return nil
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new blog",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")

		return rootApp.gate.Wrap(func(ctx context.Context, ident api.Identity) error {
			post, err := rootApp.client.CreateBlog(ctx, title, content)
			if err != nil {
				return rootApp.authErr(err)
			}
			fmt.Printf("Created blog %s\n", post.ID)
			return nil
		})(cmd.Context())
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit one of your blogs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Only flags the user actually set travel in the update; the
		// rest of the post stays untouched.
		var title, content *string
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			title = &v
		}
		if cmd.Flags().Changed("content") {
			v, _ := cmd.Flags().GetString("content")
			content = &v
		}
		if title == nil && content == nil {
			return fmt.Errorf("nothing to change: pass --title and/or --content")
		}

		return rootApp.gate.Wrap(func(ctx context.Context, ident api.Identity) error {
			post, err := rootApp.client.EditBlog(ctx, args[0], title, content)
			if err != nil {
				return rootApp.authErr(err)
			}
			fmt.Printf("Updated blog %s\n", post.ID)
			return nil
		})(cmd.Context())
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one of your blogs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootApp.gate.Wrap(func(ctx context.Context, ident api.Identity) error {
			if err := rootApp.client.DeleteBlog(ctx, args[0]); err != nil {
				return rootApp.authErr(err)
			}
			fmt.Println("Deleted.")
			return nil
		})(cmd.Context())
	},
}

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List only your own blogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootApp.gate.Wrap(func(ctx context.Context, ident api.Identity) error {
			posts, err := rootApp.client.AllBlogs(ctx)
			if err != nil {
				return rootApp.authErr(err)
			}
			var mine []api.Post
			for _, post := range posts {
				if post.Author == ident.Email {
					mine = append(mine, post)
				}
			}
			printPosts(mine)
			return nil
		})(cmd.Context())
	},
}

func printPosts(posts []api.Post) {
	if len(posts) == 0 {
		fmt.Println("No blogs yet.")
		return
	}
	for _, post := range posts {
		fmt.Printf("%s  %s  by %s  (%s)\n", post.ID, post.Title, post.Author, post.CreatedAt.Format("2006-01-02"))
	}
}

func init() {
	createCmd.Flags().String("title", "", "blog title")
	createCmd.Flags().String("content", "", "blog content")
	createCmd.MarkFlagRequired("title")
	createCmd.MarkFlagRequired("content")

	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("content", "", "new content")

	rootCmd.AddCommand(listCmd, showCmd, createCmd, editCmd, deleteCmd, mineCmd)
}
