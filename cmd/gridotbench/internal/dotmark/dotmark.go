package dotmark

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/gridot/gridutil"
)

// Load scans dataDir's immediate subdirectories as DOTmark class names and
// indexes every data<R>_1<NNNN>.csv file found directly within each.
func Load(dataDir string) (*Dataset, error) {
	classEntries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("dotmark: read data directory: %w", err)
	}

	ds := &Dataset{dataDir: dataDir, classImages: make(map[string]map[int][]image)}
	resSeen := make(map[int]bool)

	for _, classEntry := range classEntries {
		if !classEntry.IsDir() {
			continue
		}
		className := classEntry.Name()
		classDir := filepath.Join(dataDir, className)

		fileEntries, err := os.ReadDir(classDir)
		if err != nil {
			return nil, fmt.Errorf("dotmark: read class directory %s: %w", className, err)
		}
		for _, fileEntry := range fileEntries {
			m := filenamePattern.FindStringSubmatch(fileEntry.Name())
			if m == nil {
				continue
			}
			res, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			num, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			if ds.classImages[className] == nil {
				ds.classImages[className] = make(map[int][]image)
			}
			ds.classImages[className][res] = append(ds.classImages[className][res], image{
				number: num,
				path:   filepath.Join(classDir, fileEntry.Name()),
			})
			resSeen[res] = true
		}
	}

	if len(resSeen) == 0 {
		return nil, ErrNoClasses
	}
	for r := range resSeen {
		ds.resolutions = append(ds.resolutions, r)
	}
	sort.Ints(ds.resolutions)
	return ds, nil
}

// loadCSV reads a row-major integer-pixel CSV image, one row per line,
// comma-separated cells.
func loadCSV(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []int64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		for _, cell := range strings.Split(line, ",") {
			v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("dotmark: parse cell in %s: %w", path, err)
			}
			out = append(out, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// buildSupply reads source and target as signed supply: +1 is added to
// every raw pixel value (zero pixels are rejected by some reference
// solvers) before the target is negated and appended to the source.
func buildSupply(sourcePath, targetPath string) ([]int64, error) {
	src, err := loadCSV(sourcePath)
	if err != nil {
		return nil, err
	}
	dst, err := loadCSV(targetPath)
	if err != nil {
		return nil, err
	}

	supply := make([]int64, 0, len(src)+len(dst))
	for _, v := range src {
		supply = append(supply, v+1)
	}
	for _, v := range dst {
		supply = append(supply, -(v + 1))
	}
	return supply, nil
}

// SolveFunc runs the core solver over one grid-transport instance, returning
// a ProblemType-shaped status string ("OPTIMAL", "INFEASIBLE", or
// "UNBOUNDED"), the objective value, and any construction error.
type SolveFunc func(xDim, yDim gridutil.Pos, supply []int64) (status string, objective int64, elapsedMillis float64, err error)

// Run enumerates every unordered image pair (i, j), i != j, within each
// (class, resolution) cell and solves it via solve, repeating each pair
// `runs` times and reporting the mean wall-clock duration. resolution == 0
// means every resolution present in ds is included. A pair whose images
// cannot be read or solved is reported to stderr and skipped; the rest of
// the run continues.
//
// Complexity: O(images^2) pairs per (class, resolution) cell, each costing
// runs solves.
func (ds *Dataset) Run(runs, resolution int, solve SolveFunc, onResult func(Result)) ([]Result, error) {
	if runs < 1 {
		runs = 1
	}

	classNames := make([]string, 0, len(ds.classImages))
	for name := range ds.classImages {
		classNames = append(classNames, name)
	}
	sort.Strings(classNames)

	var results []Result
	for _, res := range ds.resolutions {
		if resolution != 0 && res != resolution {
			continue
		}
		dim := gridutil.Pos{res, res}

		for _, className := range classNames {
			images := ds.classImages[className][res]
			if len(images) == 0 {
				continue
			}
			sort.Slice(images, func(i, j int) bool { return images[i].number < images[j].number })

			for i := 0; i < len(images); i++ {
			pair:
				for j := i + 1; j < len(images); j++ {
					supply, err := buildSupply(images[i].path, images[j].path)
					if err != nil {
						fmt.Fprintf(os.Stderr, "dotmark: skipping pair (%d, %d) of %s at %d: %v\n",
							images[i].number, images[j].number, className, res, err)
						continue
					}

					var status string
					var objective int64
					var meanMillis float64
					for r := 0; r < runs; r++ {
						st, obj, ms, err := solve(dim, dim, supply)
						if err != nil {
							fmt.Fprintf(os.Stderr, "dotmark: skipping pair (%d, %d) of %s at %d: %v\n",
								images[i].number, images[j].number, className, res, err)
							continue pair
						}
						status, objective = st, obj
						meanMillis += ms
					}
					meanMillis /= float64(runs)

					result := Result{
						Class:      className,
						Resolution: res,
						I:          images[i].number,
						J:          images[j].number,
						Status:     status,
						Optimal:    status == "OPTIMAL",
						Objective:  objective,
						Millis:     meanMillis,
					}
					results = append(results, result)
					if onResult != nil {
						onResult(result)
					}
				}
			}
		}
	}
	return results, nil
}
