package codec

import "github.com/rexliu/navb/pkg/nav"

// Sample returns a small configuration that exercises nested groups and
// external tabs.
func Sample() nav.Config {
	return nav.Config{
		Groups: []nav.Group{
			{
				Group: "Getting Started",
				Icon:  "play",
				Pages: []nav.PageEntry{
					nav.PagePath("overview"),
					nav.PagePath("quickstart"),
					nav.NestedGroup(nav.Group{
						Group: "Installation",
						Icon:  "download",
						Pages: []nav.PageEntry{
							nav.PagePath("installation/requirements"),
							nav.PagePath("installation/setup"),
						},
					}),
				},
			},
			{
				Group: "API Reference",
				Icon:  "code",
				Tag:   "NEW",
				Pages: []nav.PageEntry{
					nav.PagePath("api/authentication"),
					nav.PagePath("api/endpoints"),
					nav.PagePath("api/errors"),
				},
			},
		},
		Tabs: []nav.Tab{
			{
				Tab:  "Documentation",
				Icon: "book-open",
				Pages: []nav.PageEntry{
					nav.PagePath("docs/guide"),
					nav.PagePath("docs/examples"),
				},
			},
			{Tab: "Blog", Icon: "newspaper", Href: "https://example.com/blog"},
		},
	}
}
