// Package markdown discovers post files on a filesystem, decodes their front
// matter and hands the result to the post index as a posts.Collection. Each
// document carries a *Content handle that renders its body with goldmark on
// demand.
package markdown
