/*
Package facecrop normalizes the pose of annotated face images before they are
used to train generative models.

Given the nine landmarks of a face (eyes, mouth and ears) the image is rotated
around the center of the eyes until the eye line is horizontal, the landmarks
are rotated along with it, and a square window anchored to the eyes and sized
by the distance between the ear bases is cropped out of the straightened image.

The package provides a command line interface which prepares the whole
dataset or crops a single image. To check the supported flags type:

	$ facecrop --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"log"

		"github.com/disintegration/imaging"
		"github.com/esimov/facecrop"
	)

	func main() {
		coords, err := facecrop.ReadAnnotationFile("cat.jpg.cat")
		if err != nil {
			log.Fatal(err)
		}
		img, err := imaging.Open("cat.jpg")
		if err != nil {
			log.Fatal(err)
		}
		crop, err := facecrop.Normalize(coords, img)
		if err != nil {
			log.Fatalf("error cropping the face: %v", err)
		}
		_ = imaging.Save(crop, "face.jpg")
	}
*/
package facecrop
