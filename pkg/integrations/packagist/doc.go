// Package packagist fetches Composer package metadata from Packagist
// (https://packagist.org).
//
// `phpgen deps info <package>` uses it to show the latest stable release,
// license, authors and requirements of a catalog entry:
//
//	client := packagist.NewClient(fileCache, packagist.DefaultTTL, "")
//	info, err := client.FetchPackage(ctx, "laravel/sanctum", false)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(info.Name, info.Version, info.Dependencies)
//
// Responses come from the p2 endpoint (/p2/<vendor>/<name>.json) and are
// cached; pass refresh=true to bypass the cache.
//
// Platform requirements (php, ext-*, lib-*, composer-*-api) are removed
// from Require and Dependencies; the php constraint is reported in PHP.
// The first non-dev release with a dotted version number is treated as the
// latest stable one.
package packagist
