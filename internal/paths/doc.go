// Provides platform-appropriate cache locations for downloaded artifacts.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS. The tool name "bldr" is used as the subdirectory under the
// user cache base. Toolchain trees and prebuilt launcher binaries live in
// separate subdirectories so that a toolchain upgrade never touches the
// launcher cache and vice versa.
package paths
