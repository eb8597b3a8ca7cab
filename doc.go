/*
Package colortrack locates a single colored object in the frames of a video,
traces its path and estimates its velocity in pixels per second.

Every frame goes through the same stages: the frame is blurred and segmented
in HSV space, the mask is cleaned with a morphological opening, the largest
connected region is selected and its centroid and enclosing circle are computed.
The centroid is appended to the trajectory and the overlay (enclosing circle and
trajectory polyline) is drawn onto the frame.

The package provides a command line interface, supporting various flags for the
input, the outputs and the target color. To check the supported commands type:

	$ colortrack --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/esimov/colortrack"
		"github.com/esimov/colortrack/video"
	)

	func main() {
		src, err := video.Open("ball.mp4")
		if err != nil {
			panic(err)
		}
		defer src.Close()

		p := colortrack.DefaultProcessor()
		traj, err := p.Track(context.Background(), src, colortrack.Discard)
		if err != nil {
			fmt.Printf("Error tracking the object: %s", err.Error())
		}
		fmt.Println(traj.Summary())
	}
*/
package colortrack
