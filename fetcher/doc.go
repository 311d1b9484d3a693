// Package fetcher collects every public annotation of a web page by paging
// through the Hypothesis search API until it returns an empty page.
//
//	f := fetcher.New(hypothesis.NewClient(), fetcher.WithProgress(os.Stderr))
//	annotations, err := f.FetchAll(ctx, "https://example.com/article")
//	if err != nil {
//	    return err
//	}
//	return annotations.Encode(os.Stdout)
//
// Each non-empty page moves the cursor to the updated timestamp of its last
// row and writes a progress line such as
//
//	Fetched 400 annotations. Search after 2024-03-01T10:00:00.000000+00:00
package fetcher
