// Package media imports remote images into object storage as attachments.
//
// Every image is addressed by a dedup key built from its owner's name and its
// role (capsule, header, galleryimg0, ...). An attachment whose file name
// matches the key is reused instead of downloading the image again.
package media
