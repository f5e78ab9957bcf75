package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/jamesprial/go-medium-api-wrapper/pkg/types"
)

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the user the access token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.client(cmd)
			if err != nil {
				return err
			}

			user, err := client.GetUser(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), user, userTable(user))
		},
	}
}

func newPostsCmd(a *app) *cobra.Command {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "List and create posts",
	}
	postsCmd.AddCommand(newPostsListCmd(a))
	postsCmd.AddCommand(newPostsCreateCmd(a))
	return postsCmd
}

func newPostsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list USER_ID",
		Short: "List a user's posts",
		Args:  idArgs("userId"),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.client(cmd)
			if err != nil {
				return err
			}

			posts, err := client.GetPostsForUser(cmd.Context(), &types.PostsRequest{UserID: args[0]})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), posts, postsTable(posts))
		},
	}
}

type createPostFlags struct {
	title         string
	content       string
	contentFile   string
	format        string
	tags          []string
	canonicalURL  string
	status        string
	license       string
	publicationID string
}

// request builds the post request. Unset flags stay empty so they are
// omitted from the body.
func (f *createPostFlags) request(stdin io.Reader, userID string) (*types.CreatePostRequest, error) {
	content := f.content
	if f.contentFile != "" {
		var (
			data []byte
			err  error
		)
		if f.contentFile == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(f.contentFile)
		}
		if err != nil {
			return nil, fmt.Errorf("reading content: %w", err)
		}
		content = string(data)
	}

	tags := lo.Uniq(lo.FilterMap(f.tags, func(t string, _ int) (string, bool) {
		t = strings.TrimSpace(t)
		return t, t != ""
	}))

	return &types.CreatePostRequest{
		UserID:        userID,
		PublicationID: f.publicationID,
		Title:         f.title,
		Content:       content,
		ContentFormat: types.ContentFormat(f.format),
		Tags:          tags,
		CanonicalURL:  f.canonicalURL,
		PublishStatus: types.PublishStatus(f.status),
		License:       types.License(f.license),
	}, nil
}

func newPostsCreateCmd(a *app) *cobra.Command {
	var flags createPostFlags

	cmd := &cobra.Command{
		Use:   "create [USER_ID]",
		Short: "Create a post on a user's profile or in a publication",
		Long: `Create a post. With --publication the post is created in that publication
and USER_ID may be omitted. Only the flags that are given are sent.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var userID string
			if len(args) == 1 {
				userID = args[0]
				if err := checkID("userId", userID); err != nil {
					return err
				}
			}
			if flags.publicationID != "" {
				if err := checkID("publicationId", flags.publicationID); err != nil {
					return err
				}
			}

			client, _, err := a.client(cmd)
			if err != nil {
				return err
			}
			req, err := flags.request(cmd.InOrStdin(), userID)
			if err != nil {
				return err
			}

			var post *types.Post
			if flags.publicationID != "" {
				post, err = client.CreatePostInPublication(cmd.Context(), req)
			} else {
				post, err = client.CreatePost(cmd.Context(), req)
			}
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), post, postsTable([]*types.Post{post}))
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.title, "title", "", "post title")
	f.StringVar(&flags.content, "content", "", "post body")
	f.StringVar(&flags.contentFile, "content-file", "", "read the post body from a file (- for stdin)")
	f.StringVar(&flags.format, "format", "", "content format: html or markdown")
	f.StringSliceVar(&flags.tags, "tag", nil, "tag (repeatable)")
	f.StringVar(&flags.canonicalURL, "canonical-url", "", "original location of the content")
	f.StringVar(&flags.status, "status", "", "publish status: public, draft or unlisted")
	f.StringVar(&flags.license, "license", "", "license, e.g. cc-40-by")
	f.StringVar(&flags.publicationID, "publication", "", "create the post in this publication")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
	return cmd
}

func newPublicationsCmd(a *app) *cobra.Command {
	pubCmd := &cobra.Command{
		Use:     "publications",
		Aliases: []string{"pubs"},
		Short:   "Inspect publications",
	}

	pubCmd.AddCommand(&cobra.Command{
		Use:   "list USER_ID",
		Short: "List the publications a user belongs to",
		Args:  idArgs("userId"),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.client(cmd)
			if err != nil {
				return err
			}

			pubs, err := client.GetPublicationsForUser(cmd.Context(), &types.PublicationsRequest{UserID: args[0]})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), pubs, publicationsTable(pubs))
		},
	})

	pubCmd.AddCommand(&cobra.Command{
		Use:   "contributors PUBLICATION_ID",
		Short: "List a publication's editors and writers",
		Args:  idArgs("publicationId"),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := a.client(cmd)
			if err != nil {
				return err
			}

			contributors, err := client.GetContributorsForPublication(cmd.Context(), &types.PublicationRequest{PublicationID: args[0]})
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), contributors, contributorsTable(contributors))
		},
	})

	return pubCmd
}
